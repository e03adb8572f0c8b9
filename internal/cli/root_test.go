package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersFlags(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	for _, name := range []string{"config", "verbose", "json", "no-progress", "interpreter", "script"} {
		require.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	require.Equal(t, "perl", cmd.PersistentFlags().Lookup("interpreter").DefValue)

	generate, _, err := cmd.Find([]string{"generate"})
	require.NoError(t, err)
	for _, name := range []string{"output", "transpose", "timeout", "open"} {
		require.NotNil(t, generate.Flags().Lookup(name), name)
	}
	require.Equal(t, "o", generate.Flags().Lookup("output").Shorthand)
}

func TestRootHelpListsCommands(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	for _, name := range []string{"generate", "check", "config", "version"} {
		require.Contains(t, out.String(), name)
	}
}

func TestCLIErrorCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		args        []string
		errContains string
	}{
		{name: "unknown command", args: []string{"badcmd"}, errContains: "unknown command"},
		{name: "unknown root flag", args: []string{"--badflag"}, errContains: "unknown flag"},
		{name: "unknown subcommand flag", args: []string{"generate", "--bogus", "song.cho"}, errContains: "unknown flag"},
		{name: "check takes no args", args: []string{"check", "extra"}, errContains: "unknown command"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := runCommand(t, tt.args)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestVersionFlagOutput(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCommand(t, []string{"--version"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout, "chordpdf v"), "expected version prefix, got: %s", stdout)
}

func TestVersionCommandOutput(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	stdout, _, err := env.run(t, "", "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout, "chordpdf v"))
}

func TestExplicitMissingConfigFails(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.config = env.dir + "/absent.yaml"
	_, _, err := env.run(t, "", "config")
	require.Error(t, err)
	require.Contains(t, err.Error(), "read config")
}

func TestConfigCommandPrintsResolvedScript(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	stdout, _, err := env.run(t, "", "config", "--script", env.script, "--interpreter", "perl5")
	require.NoError(t, err)
	require.Contains(t, stdout, "interpreter: perl5")
	require.Contains(t, stdout, "script: "+env.script)
	require.Contains(t, stdout, "tempDir: "+env.dir)
	require.Contains(t, stdout, "timeout: 2m0s")
}
