package testutil

import (
	"context"
	"strings"
	"sync"
)

// Call records one external command invocation.
type Call struct {
	Name string
	Args []string
}

// String renders the call as a single command line.
func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner records invocations instead of starting processes.
// Hook, when set, runs for every call and its error is returned to the caller;
// tests use it to simulate the side effects of a tool or a non-zero exit.
type Runner struct {
	Hook func(call Call) error

	mu    sync.Mutex
	calls []Call
}

// Run records the call and delegates to Hook.
func (r *Runner) Run(_ context.Context, name string, args ...string) error {
	call := Call{Name: name, Args: append([]string(nil), args...)}
	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()
	if r.Hook != nil {
		return r.Hook(call)
	}
	return nil
}

// Calls returns a copy of the recorded invocations.
func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// CommandLines returns the recorded invocations rendered as strings.
func (r *Runner) CommandLines() []string {
	calls := r.Calls()
	lines := make([]string, 0, len(calls))
	for _, c := range calls {
		lines = append(lines, c.String())
	}
	return lines
}
