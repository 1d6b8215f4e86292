// Package command runs the external tools the feed pipeline drives
// (nipkg and the build report script). Callers depend on Runner so tests can
// substitute a recorder and never start a real process.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/conn-castle/nifeed/internal/messages"
)

// Runner runs an external command to completion and fails when it exits non-zero.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner implements Runner with os/exec.
// Nil writers default to the process stdout and stderr.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger
}

// execCommandContext is swapped in tests to observe the constructed command.
var execCommandContext = exec.CommandContext

// Run starts name with args and waits for it to exit.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(messages.CommandNameRequired)
	}
	if r.Logger != nil {
		r.Logger.Debug("exec", "cmd", name, "args", args)
	}

	// #nosec G204 -- name comes from trusted configuration (nipkg.path, publish.python).
	cmd := execCommandContext(ctx, name, args...)
	cmd.Stdout = writerOrDefault(r.Stdout, os.Stdout)
	cmd.Stderr = writerOrDefault(r.Stderr, os.Stderr)

	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf(messages.CommandCanceledFmt, name, errors.Join(ctxErr, err))
		}
		return &ExitError{Name: name, Args: append([]string(nil), args...), Code: code, Err: err}
	}
	return nil
}

func writerOrDefault(w io.Writer, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}

// ExitError reports a failed external command.
// Code is the process exit code, or -1 when the process could not be started.
type ExitError struct {
	Name string
	Args []string
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Code >= 0 {
		return fmt.Sprintf(messages.CommandExitCodeFmt, e.commandLine(), e.Code, e.Err)
	}
	return fmt.Sprintf(messages.CommandStartFailedFmt, e.commandLine(), e.Err)
}

// Unwrap exposes the underlying error so callers can match *exec.ExitError.
func (e *ExitError) Unwrap() error {
	return e.Err
}

func (e *ExitError) commandLine() string {
	if len(e.Args) == 0 {
		return e.Name
	}
	return e.Name + " " + strings.Join(e.Args, " ")
}
