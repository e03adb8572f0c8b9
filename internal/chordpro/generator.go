package chordpro

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultInterpreter runs the chordpro script when Options names none.
const DefaultInterpreter = "perl"

// Request is one song to render.
type Request struct {
	SongText   string
	OutputPath string
	// Transpose shifts every chord by the given number of semitones.
	Transpose int
}

// Result describes a rendered PDF. Message is the text shown to the user.
type Result struct {
	OutputPath string
	Message    string
}

// Options configures a Generator. Zero values fall back to perl, the
// system temp directory, no timeout, ExecRunner and a no-op logger.
type Options struct {
	Interpreter string
	ScriptPath  string
	TempDir     string
	Timeout     time.Duration
	Runner      CommandRunner
	Logger      *zap.Logger
}

// Generator renders songs to PDF through the external chordpro script.
// It holds no per-call state and may be shared between goroutines.
type Generator struct {
	interpreter string
	scriptPath  string
	tempDir     string
	timeout     time.Duration
	runner      CommandRunner
	logger      *zap.Logger
	newID       func() string
}

// NewGenerator applies defaults to opts. The script path is not checked here;
// Generate and CheckScript report a missing script.
func NewGenerator(opts Options) *Generator {
	g := &Generator{
		interpreter: strings.TrimSpace(opts.Interpreter),
		scriptPath:  strings.TrimSpace(opts.ScriptPath),
		tempDir:     opts.TempDir,
		timeout:     opts.Timeout,
		runner:      opts.Runner,
		logger:      opts.Logger,
		newID:       uuid.NewString,
	}
	if g.interpreter == "" {
		g.interpreter = DefaultInterpreter
	}
	if g.runner == nil {
		g.runner = ExecRunner{}
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	return g
}

// Interpreter returns the interpreter binary, as configured or defaulted.
func (g *Generator) Interpreter() string { return g.interpreter }

// ScriptPath returns the configured script, or "" when none was resolved.
func (g *Generator) ScriptPath() string { return g.scriptPath }

// Generate stages req.SongText in a temporary file and runs
//
//	<interpreter> <script> --output <req.OutputPath> <temp file>
//
// The temporary file is removed on every return path.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath == "" {
		return Result{}, ErrOutputPathRequired
	}

	id := g.newID()
	log := g.logger.With(zap.String("invocation", id))

	inputPath := tempInputPath(g.tempDir, id)
	if err := stageSong(inputPath, WithTranspose(req.SongText, req.Transpose)); err != nil {
		return Result{}, err
	}
	defer func() {
		if err := os.Remove(inputPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Debug("failed to remove temp input", zap.String("path", inputPath), zap.Error(err))
		}
	}()

	runCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	if err := g.probe(runCtx); err != nil {
		return Result{}, g.contextError(ctx, runCtx, err)
	}

	if err := g.checkScript(); err != nil {
		return Result{}, err
	}

	args := []string{g.scriptPath, "--output", outputPath, inputPath}
	log.Debug("running chordpro", zap.String("interpreter", g.interpreter), zap.Strings("args", args))

	started := time.Now()
	out, err := g.runner.Run(runCtx, g.interpreter, args...)
	elapsed := time.Since(started)
	if err != nil && detachedOutput(err, out) && ctx.Err() == nil && runCtx.Err() == nil {
		log.Debug("chordpro exited while a child still held its output", zap.Error(err))
		err = nil
	}
	if err != nil {
		if ctxErr := g.contextError(ctx, runCtx, nil); ctxErr != nil {
			log.Warn("chordpro interrupted", zap.Duration("elapsed", elapsed), zap.Error(ctxErr))
			return Result{}, ctxErr
		}

		var exit interface{ ExitCode() int }
		if errors.As(err, &exit) {
			genErr := &GenerationError{
				ExitCode: exit.ExitCode(),
				Stderr:   decodeStream(out.Stderr),
				Stdout:   decodeStream(out.Stdout),
			}
			log.Warn("chordpro failed", zap.Int("exit_code", genErr.ExitCode), zap.Duration("elapsed", elapsed))
			return Result{}, genErr
		}

		return Result{}, fmt.Errorf("failed to execute chordpro: %w", err)
	}

	log.Info("pdf generated", zap.String("output", outputPath), zap.Duration("elapsed", elapsed))
	return Result{
		OutputPath: outputPath,
		Message:    fmt.Sprintf("PDF generated successfully at: %s", outputPath),
	}, nil
}

// Probe spawns "<interpreter> --version". Only a failure to start the process
// counts as missing; a non-zero exit from the probe is accepted.
func (g *Generator) Probe(ctx context.Context) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	out, err := g.runner.Run(ctx, g.interpreter, "--version")
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		var exit interface{ ExitCode() int }
		if !errors.As(err, &exit) && !errors.Is(err, exec.ErrWaitDelay) {
			return "", &InterpreterMissingError{Interpreter: g.interpreter, Err: err}
		}
	}

	return strings.TrimSpace(decodeStream(out.Stdout)), nil
}

func (g *Generator) probe(ctx context.Context) error {
	_, err := g.Probe(ctx)
	return err
}

// CheckScript reports whether the configured script can be used.
func (g *Generator) CheckScript() error {
	return g.checkScript()
}

func (g *Generator) checkScript() error {
	if g.scriptPath == "" {
		return ErrScriptNotConfigured
	}

	info, err := os.Stat(g.scriptPath)
	if err != nil {
		return &ScriptNotFoundError{Path: g.scriptPath, Err: err}
	}
	if info.IsDir() {
		return &ScriptNotFoundError{Path: g.scriptPath, Err: fmt.Errorf("%s is a directory", g.scriptPath)}
	}
	return nil
}

// contextError maps an expired run context to ErrTimeout and a cancelled
// caller context to a wrapped context error. It returns fallback otherwise.
func (g *Generator) contextError(parent, run context.Context, fallback error) error {
	if parent.Err() != nil {
		return fmt.Errorf("generate pdf: %w", parent.Err())
	}
	if errors.Is(run.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrTimeout, g.timeout)
	}
	return fallback
}
