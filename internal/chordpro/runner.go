package chordpro

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// Output holds the captured streams of a finished process. ExitCode is -1
// when the process never started or was killed by a signal.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// CommandRunner abstracts process execution so the generator can be tested
// without spawning real interpreters.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (Output, error)
}

// ExecRunner runs commands with os/exec. Once the process has exited or been
// killed, children still holding its pipes get WaitDelay before Run gives up
// on them and returns exec.ErrWaitDelay.
type ExecRunner struct {
	WaitDelay time.Duration
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	cmd.WaitDelay = r.WaitDelay
	if cmd.WaitDelay <= 0 {
		cmd.WaitDelay = time.Second
	}

	err := cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes(), ExitCode: -1}
	if cmd.ProcessState != nil {
		out.ExitCode = cmd.ProcessState.ExitCode()
	}
	return out, err
}

// decodeStream turns raw process output into text, replacing invalid UTF-8.
func decodeStream(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}

// detachedOutput reports a run whose process exited 0 while a leftover child
// kept its output pipes open past WaitDelay.
func detachedOutput(err error, out Output) bool {
	return errors.Is(err, exec.ErrWaitDelay) && out.ExitCode == 0
}
