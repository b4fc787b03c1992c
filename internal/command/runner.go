package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// stderrTail bounds how much of a failed command's stderr is kept.
const stderrTail = 2048

// ErrNotFound is returned when the requested binary cannot be located.
var ErrNotFound = errors.New("binary not found")

// Runner abstracts command execution for testability.
type Runner interface {
	// Output runs the command and returns its standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Run runs the command and discards its standard output.
	Run(ctx context.Context, name string, args ...string) error
}

// ExitError reports a command that started but did not exit cleanly.
type ExitError struct {
	Name   string
	Args   []string
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Name, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Output implements Runner.
func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	if err := run(ctx, name, args, &stdout, &stderr); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	var stderr bytes.Buffer
	return run(ctx, name, args, nil, &stderr)
}

func run(ctx context.Context, name string, args []string, stdout, stderr *bytes.Buffer) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if stdout != nil {
		cmd.Stdout = stdout
	}
	cmd.Stderr = stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", name, ctxErr)
	}
	return &ExitError{
		Name:   name,
		Args:   append([]string(nil), args...),
		Stderr: tail(stderr.String()),
		Err:    err,
	}
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= stderrTail {
		return s
	}
	return "..." + s[len(s)-stderrTail:]
}
