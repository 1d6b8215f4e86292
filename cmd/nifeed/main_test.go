package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/conn-castle/nifeed/internal/command"
)

func TestMainVersion(t *testing.T) {
	var out bytes.Buffer
	if err := execute([]string{"nifeed", "--version"}, &out, &out); err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(out.String(), Version) {
		t.Fatalf("expected version output, got %q", out.String())
	}
}

func TestMainUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	if err := execute([]string{"nifeed", "unknown"}, &out, &out); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRunMainSuccess(t *testing.T) {
	var out bytes.Buffer
	called := false
	runMain([]string{"nifeed", "--version"}, &out, &out, func(int) { called = true })
	if called {
		t.Fatalf("unexpected exit")
	}
}

func TestRunMainError(t *testing.T) {
	var out bytes.Buffer
	code := 0
	runMain([]string{"nifeed", "unknown"}, &out, &out, func(c int) { code = c })
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(out.String(), "unknown command") {
		t.Fatalf("expected error output, got %q", out.String())
	}
}

func TestRunMainExitCodes(t *testing.T) {
	orig := executeFunc
	t.Cleanup(func() { executeFunc = orig })

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOut  bool
	}{
		{"tool exit code", fmt.Errorf("add: %w", &command.ExitError{Name: "nipkg", Code: 3, Err: errors.New("exit status 3")}), 3, true},
		{"tool failed to start", &command.ExitError{Name: "nipkg", Code: -1, Err: errors.New("not found")}, 1, true},
		{"silent", &SilentExitError{Code: 4}, 4, false},
		{"plain", errors.New("boom"), 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executeFunc = func([]string, io.Writer, io.Writer) error { return tt.err }
			var out bytes.Buffer
			code := 0
			runMain([]string{"nifeed"}, &out, &out, func(c int) { code = c })
			if code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d", code, tt.wantCode)
			}
			if got := out.Len() > 0; got != tt.wantOut {
				t.Fatalf("output written = %v, want %v (%q)", got, tt.wantOut, out.String())
			}
		})
	}
}

func TestMainCallsExecute(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	os.Args = []string{"nifeed", "--version"}
	main()
}

func TestVersionString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = origVersion, origCommit, origDate })

	Version, Commit, BuildDate = "v1.2.0", "unknown", "unknown"
	if got := versionString(); got != "v1.2.0" {
		t.Fatalf("versionString() = %q", got)
	}
	Commit, BuildDate = "abc123", "2026-01-02"
	if got := versionString(); got != "v1.2.0 (commit abc123, built 2026-01-02)" {
		t.Fatalf("versionString() = %q", got)
	}
}
