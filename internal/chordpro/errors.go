package chordpro

import (
	"errors"
	"fmt"
)

var (
	ErrOutputPathRequired  = errors.New("output path is required")
	ErrInterpreterMissing  = errors.New("interpreter not installed")
	ErrScriptNotConfigured = errors.New("chordpro script not configured; set CHORDPDF_SCRIPT, CHORDPRO_HOME or the script key in the config file")
	ErrScriptNotFound      = errors.New("chordpro script not found")
	ErrTimeout             = errors.New("chordpro timed out")
)

// InterpreterMissingError reports that the interpreter probe could not be spawned.
type InterpreterMissingError struct {
	Interpreter string
	Err         error
}

func (e *InterpreterMissingError) Error() string {
	return fmt.Sprintf("%s is not installed or not in PATH. Please install %s to generate PDFs.", e.Interpreter, e.Interpreter)
}

func (e *InterpreterMissingError) Unwrap() error { return e.Err }

func (e *InterpreterMissingError) Is(target error) bool { return target == ErrInterpreterMissing }

type ScriptNotFoundError struct {
	Path string
	Err  error
}

func (e *ScriptNotFoundError) Error() string {
	return fmt.Sprintf("chordpro script not found at %s: %v", e.Path, e.Err)
}

func (e *ScriptNotFoundError) Unwrap() error { return e.Err }

func (e *ScriptNotFoundError) Is(target error) bool { return target == ErrScriptNotFound }

// GenerationError carries the output of a chordpro run that exited non-zero.
// Both streams are kept verbatim.
type GenerationError struct {
	ExitCode int
	Stderr   string
	Stdout   string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("ChordPro error:\nStderr: %s\nStdout: %s", e.Stderr, e.Stdout)
}
