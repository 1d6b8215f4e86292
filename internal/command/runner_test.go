package command

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/nifeed/internal/testutil"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
}

func TestExecRunnerSuccess(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	testutil.WriteStub(t, dir, "tool")

	var stdout bytes.Buffer
	r := ExecRunner{Stdout: &stdout, Stderr: &stdout}
	require.NoError(t, r.Run(context.Background(), filepath.Join(dir, "tool"), "feed-create", "/feeds/x"))
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	testutil.WriteStubWithExit(t, dir, "tool", 3)

	var out bytes.Buffer
	r := ExecRunner{Stdout: &out, Stderr: &out}
	err := r.Run(context.Background(), filepath.Join(dir, "tool"), "feed-add-pkg", "a.nipkg")
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, []string{"feed-add-pkg", "a.nipkg"}, exitErr.Args)
	assert.Contains(t, err.Error(), "exited with code 3")

	var osExit *exec.ExitError
	assert.True(t, errors.As(err, &osExit), "ExitError must unwrap to *exec.ExitError")
}

func TestExecRunnerArgumentsForwarded(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	testutil.WriteStubExpectArg(t, dir, "tool", "setStatusCompleted")

	r := ExecRunner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	require.NoError(t, r.Run(context.Background(), filepath.Join(dir, "tool"), "--build", "3", "setStatusCompleted"))
	require.Error(t, r.Run(context.Background(), filepath.Join(dir, "tool"), "addBuild"))
}

func TestExecRunnerMissingBinary(t *testing.T) {
	r := ExecRunner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := r.Run(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, -1, exitErr.Code)
}

func TestExecRunnerRequiresName(t *testing.T) {
	err := ExecRunner{}.Run(context.Background(), "  ")
	require.Error(t, err)
}

func TestExecRunnerUsesContext(t *testing.T) {
	skipOnWindows(t)
	original := execCommandContext
	t.Cleanup(func() { execCommandContext = original })

	var gotCtx context.Context
	execCommandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		gotCtx = ctx
		return exec.Command("true")
	}

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "marker")
	require.NoError(t, ExecRunner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}.Run(ctx, "nipkg"))
	require.NotNil(t, gotCtx)
	assert.Equal(t, "marker", gotCtx.Value(ctxKey{}))
}

func TestExecRunnerPassesPathsVerbatim(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.log")
	testutil.WriteStubLogArgs(t, dir, "nipkg", logPath)

	r := ExecRunner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	require.NoError(t, r.Run(context.Background(), filepath.Join(dir, "nipkg"), "feed-add-pkg", "/feeds/1.0/1.0.1", "/pool/A/ni a_1.0.0.nipkg"))
	require.NoError(t, r.Run(context.Background(), filepath.Join(dir, "nipkg"), "feed-remove-pkg", "/feeds/1.0/1.0.1", "ni a_1.0.0.nipkg"))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t,
		"feed-add-pkg /feeds/1.0/1.0.1 /pool/A/ni a_1.0.0.nipkg\nfeed-remove-pkg /feeds/1.0/1.0.1 ni a_1.0.0.nipkg\n",
		string(data))
}
