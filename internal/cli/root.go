package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fmueller/chordpdf/internal/chordpro"
	"github.com/fmueller/chordpdf/internal/config"
	"github.com/fmueller/chordpdf/internal/logging"
	"github.com/fmueller/chordpdf/internal/version"
	"github.com/pkg/browser"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/spf13/cobra"
)

type appState struct {
	verbose     bool
	jsonLogs    bool
	noProgress  bool
	configPath  string
	interpreter string
	script      string

	cfg    config.Config
	logger *zap.Logger

	runner     chordpro.CommandRunner
	executable func() (string, error)
	openFn     func(path string) error
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&appState{
		executable: os.Executable,
		openFn:     browser.OpenFile,
	})
}

func newRootCmd(app *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "chordpdf",
		Short:         "Render ChordPro songs to PDF with the chordpro script",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Resolve(),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.New(logging.Options{Verbose: app.verbose, JSON: app.jsonLogs})
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			app.logger = logger
			_, _ = maxprocs.Set(maxprocs.Logger(logger.Sugar().Debugf))

			cfg, err := config.Load(app.configPath)
			if err != nil {
				return err
			}
			if flag := cmd.Flags().Lookup("interpreter"); flag != nil && flag.Changed {
				cfg.Interpreter = app.interpreter
			}
			if flag := cmd.Flags().Lookup("script"); flag != nil && flag.Changed {
				cfg.Script = app.script
			}
			app.cfg = cfg
			return nil
		},
	}

	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	flags := cmd.PersistentFlags()
	flags.StringVar(&app.configPath, "config", app.configPath, "Config file (default: per-user config.yaml)")
	flags.BoolVar(&app.verbose, "verbose", app.verbose, "Enable verbose logs")
	flags.BoolVar(&app.jsonLogs, "json", app.jsonLogs, "Enable JSON logging")
	flags.BoolVar(&app.noProgress, "no-progress", app.noProgress, "Disable progress indicators")
	flags.StringVar(&app.interpreter, "interpreter", config.DefaultInterpreter, "Interpreter used to run the chordpro script")
	flags.StringVar(&app.script, "script", "", "Path to chordpro.pl (overrides CHORDPDF_SCRIPT and CHORDPRO_HOME)")

	cmd.AddCommand(newGenerateCmd(app))
	cmd.AddCommand(newCheckCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func (a *appState) newGenerator() *chordpro.Generator {
	return chordpro.NewGenerator(chordpro.Options{
		Interpreter: a.cfg.Interpreter,
		ScriptPath:  a.resolveScript(),
		TempDir:     a.cfg.TempDir,
		Timeout:     a.cfg.Timeout,
		Runner:      a.runner,
		Logger:      a.log(),
	})
}

func (a *appState) resolveScript() string {
	exe := ""
	if a.executable != nil {
		if path, err := a.executable(); err == nil {
			exe = path
		} else {
			a.log().Debug("cannot resolve executable path", zap.Error(err))
		}
	}
	return a.cfg.ResolveScript(exe)
}

func (a *appState) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}

func (a *appState) progressEnabled() bool {
	if a.noProgress {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func isTerminalReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func readSong(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func isStdinArg(args []string) bool {
	return len(args) == 0 || strings.TrimSpace(args[0]) == "-"
}
