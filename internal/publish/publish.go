// Package publish registers a finished feed build with the build report service
// by invoking its buildReport.py client.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/conn-castle/nifeed/internal/command"
	"github.com/conn-castle/nifeed/internal/fsutil"
	"github.com/conn-castle/nifeed/internal/messages"
)

// Defaults for the build report client.
const (
	DefaultPython = "C:/Python27/python.exe"
	DefaultPhase  = "u"
	apiDirName    = "buildReportAPI"
	scriptName    = "buildReport.py"
	exportDirName = "export"
)

// ErrBuildReportNotFound is returned when no buildReport.py is found under the report root.
var ErrBuildReportNotFound = errors.New(messages.PublishBuildReportNotFound)

// Publisher identifies one build to the build report service.
type Publisher struct {
	Runner command.Runner
	FS     afero.Fs
	Logger *log.Logger

	// Python is the interpreter for the script; empty means DefaultPython.
	Python string
	// ReportRoot contains buildReportAPI/buildReport.py, directly or inside a versioned export.
	ReportRoot  string
	Product     string
	BaseVersion string
	BuildNumber int
	Platform    string
	// Phase is the release phase passed to addBuild; empty means DefaultPhase.
	Phase string
}

// Validate reports missing identity fields.
func (p Publisher) Validate() error {
	if strings.TrimSpace(p.ReportRoot) == "" {
		return errors.New(messages.PublishReportRootRequired)
	}
	for _, field := range []struct{ name, value string }{
		{"product", p.Product},
		{"version", p.BaseVersion},
		{"platform", p.Platform},
	} {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf(messages.PublishFieldRequiredFmt, field.name)
		}
	}
	if p.BuildNumber < 1 {
		return fmt.Errorf(messages.PublishBuildNumberInvalidFmt, p.BuildNumber)
	}
	return nil
}

// Script returns the buildReport.py path.
// <root>/buildReportAPI/buildReport.py is used when present; otherwise the
// newest <root>/export/<version>/<build>/buildReportAPI/buildReport.py.
func (p Publisher) Script() (string, error) {
	direct := filepath.Join(p.ReportRoot, apiDirName, scriptName)
	ok, err := p.isFile(direct)
	if err != nil {
		return "", err
	}
	if ok {
		return direct, nil
	}

	exportDir := filepath.Join(p.ReportRoot, exportDirName)
	version, found, err := fsutil.LatestSubdir(p.FS, exportDir)
	if err != nil {
		return "", err
	}
	if found {
		versionDir := filepath.Join(exportDir, version)
		build, found, err := fsutil.LatestSubdir(p.FS, versionDir)
		if err != nil {
			return "", err
		}
		if found {
			nested := filepath.Join(versionDir, build, apiDirName, scriptName)
			ok, err := p.isFile(nested)
			if err != nil {
				return "", err
			}
			if ok {
				return nested, nil
			}
		}
	}
	return "", fmt.Errorf(messages.PublishBuildReportNotFoundFmt, ErrBuildReportNotFound, p.ReportRoot)
}

// Publish adds the build at buildPath and then marks it complete.
// A failure of the first call skips the second.
func (p Publisher) Publish(ctx context.Context, buildPath string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	script, err := p.Script()
	if err != nil {
		return err
	}
	if p.Logger != nil {
		p.Logger.Info("publishing build", "product", p.Product, "version", p.BaseVersion, "build", p.BuildNumber, "path", buildPath)
	}
	if err := p.call(ctx, script, "addBuild", "--path", buildPath, "--phase", p.phase()); err != nil {
		return fmt.Errorf(messages.PublishAddBuildFmt, buildPath, err)
	}
	if err := p.call(ctx, script, "setStatusCompleted"); err != nil {
		return fmt.Errorf(messages.PublishSetCompleteFmt, p.BuildNumber, err)
	}
	return nil
}

// Args returns the full argument list for one buildReport.py invocation.
func (p Publisher) Args(script string, args ...string) []string {
	out := []string{
		script,
		"--product", p.Product,
		"--version", p.BaseVersion,
		"--build", strconv.Itoa(p.BuildNumber),
		"--platform", p.Platform,
	}
	return append(out, args...)
}

func (p Publisher) call(ctx context.Context, script string, args ...string) error {
	return p.Runner.Run(ctx, p.python(), p.Args(script, args...)...)
}

func (p Publisher) isFile(path string) (bool, error) {
	info, err := p.FS.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

func (p Publisher) python() string {
	if p.Python == "" {
		return DefaultPython
	}
	return p.Python
}

func (p Publisher) phase() string {
	if p.Phase == "" {
		return DefaultPhase
	}
	return p.Phase
}
