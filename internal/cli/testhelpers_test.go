package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fmueller/chordpdf/internal/chordpro"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	calls [][]string
	// staged holds the temp input content seen by the generation run.
	staged string
	run    func(name string, args []string) (chordpro.Output, error)
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) (chordpro.Output, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	if len(args) == 4 {
		if data, err := os.ReadFile(args[3]); err == nil {
			r.staged = string(data)
		}
	}
	if r.run != nil {
		return r.run(name, args)
	}
	if len(args) == 1 && args[0] == "--version" {
		return chordpro.Output{Stdout: []byte("This is perl 5\n")}, nil
	}
	return chordpro.Output{}, nil
}

type exitStatus int

func (e exitStatus) Error() string { return "exit status" }
func (e exitStatus) ExitCode() int { return int(e) }

type testEnv struct {
	app    *appState
	runner *recordingRunner
	opened []string
	dir    string
	script string
	config string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	script := filepath.Join(dir, "chordpro.pl")
	require.NoError(t, os.WriteFile(script, []byte("# chordpro\n"), 0o644))
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("tempDir: "+dir+"\n"), 0o644))

	env := &testEnv{runner: &recordingRunner{}, dir: dir, script: script, config: configPath}
	env.app = &appState{
		runner:     env.runner,
		executable: func() (string, error) { return "", errors.New("not available in tests") },
		openFn: func(path string) error {
			env.opened = append(env.opened, path)
			return nil
		},
	}
	return env
}

func (e *testEnv) run(t *testing.T, stdin string, args ...string) (stdout string, stderr string, err error) {
	t.Helper()

	cmd := newRootCmd(e.app)
	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)

	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--config", e.config, "--no-progress"))

	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func runCommand(t *testing.T, args []string) (stdout string, stderr string, err error) {
	t.Helper()

	cmd := NewRootCmd()
	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)

	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}
