// Package locate finds the newest installer package of every component in an export tree.
//
// The tree is laid out as
//
//	<export root>/<component>/<export subpath>/<release>/<build>/<compiler>/installer/*.nipkg
//
// where the build directory with the latest modification time wins.
package locate

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/conn-castle/nifeed/internal/fsutil"
	"github.com/conn-castle/nifeed/internal/messages"
	"github.com/conn-castle/nifeed/internal/warnings"
)

// Defaults for the export layout.
const (
	DefaultExportSubpath = "export/release"
	DefaultExtension     = ".nipkg"
	installerDirName     = "installer"
)

// ErrExportRootNotFound is returned when the export root does not exist.
var ErrExportRootNotFound = errors.New(messages.LocateExportRootNotFound)

// Artifact is the package selected for one component.
type Artifact struct {
	Component    string
	BuildDir     string
	InstallerDir string
	Package      string
}

// Result is the outcome of a Locate call.
type Result struct {
	// Artifacts are in component discovery order, at most one per component.
	Artifacts []Artifact
	// Builds holds every component whose newest build resolved, including
	// those without a package (their Package is empty).
	Builds []Artifact
	// Excluded lists the components skipped by the active exclusion set.
	Excluded []string
	Warnings []warnings.Warning
}

// Packages returns the selected package paths.
func (r Result) Packages() []string {
	out := make([]string, 0, len(r.Artifacts))
	for _, a := range r.Artifacts {
		out = append(out, a.Package)
	}
	return out
}

// InstallerDirs returns the installer directory of every resolved build,
// whether or not it held a package.
func (r Result) InstallerDirs() []string {
	out := make([]string, 0, len(r.Builds))
	for _, b := range r.Builds {
		out = append(out, b.InstallerDir)
	}
	return out
}

// Components returns the component names of the selected artifacts.
func (r Result) Components() []string {
	out := make([]string, 0, len(r.Artifacts))
	for _, a := range r.Artifacts {
		out = append(out, a.Component)
	}
	return out
}

// Locator scans an export tree. The zero value is not usable; FS is required.
type Locator struct {
	FS afero.Fs
	// ExportSubpath is the slash-separated path between a component and its release directories.
	ExportSubpath string
	// Extension is the package file extension, including the dot.
	Extension  string
	Exclusions Exclusions
	Logger     *log.Logger
}

// Query selects what to locate.
type Query struct {
	ExportRoot     string
	Compiler       string
	ReleaseVersion string
	FeedType       FeedType
}

// Locate returns the newest package of every non-excluded component.
// Components without a build for the release, or whose newest build has no
// package for the compiler, contribute nothing and produce a warning.
func (l Locator) Locate(q Query) (Result, error) {
	if strings.TrimSpace(q.Compiler) == "" {
		return Result{}, errors.New(messages.LocateCompilerRequired)
	}
	if strings.TrimSpace(q.ReleaseVersion) == "" {
		return Result{}, errors.New(messages.LocateReleaseRequired)
	}
	feedType := q.FeedType
	if feedType == "" {
		feedType = DefaultFeedType
	}

	components, err := l.components(q.ExportRoot)
	if err != nil {
		return Result{}, err
	}

	excluded := l.Exclusions.Active(feedType)
	var result Result
	for _, component := range components {
		if excluded.Contains(component) {
			l.debug("excluded component", "component", component, "feed_type", feedType)
			result.Excluded = append(result.Excluded, component)
			continue
		}
		build, warning, ok, err := l.locateComponent(q, component)
		if err != nil {
			return Result{}, err
		}
		if warning != nil {
			result.Warnings = append(result.Warnings, *warning)
		}
		if !ok {
			continue
		}
		result.Builds = append(result.Builds, build)
		if build.Package != "" {
			l.debug("selected package", "component", component, "package", build.Package)
			result.Artifacts = append(result.Artifacts, build)
		}
	}
	return result, nil
}

// components lists component directory names under root in lexicographic order.
func (l Locator) components(root string) ([]string, error) {
	info, err := l.FS.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf(messages.LocateExportRootFmt, ErrExportRootNotFound, root)
		}
		return nil, fmt.Errorf(messages.LocateStatExportRootFmt, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf(messages.FsutilNotDirFmt, root)
	}
	entries, err := fsutil.Subdirs(l.FS, root)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names, nil
}

func (l Locator) locateComponent(q Query, component string) (Artifact, *warnings.Warning, bool, error) {
	candidateRoot := filepath.Join(q.ExportRoot, component, filepath.FromSlash(l.exportSubpath()), q.ReleaseVersion)
	latest, ok, err := fsutil.LatestSubdir(l.FS, candidateRoot)
	if err != nil {
		return Artifact{}, nil, false, err
	}
	if !ok {
		return Artifact{}, &warnings.Warning{
			Code:              warnings.CodeComponentNoBuild,
			Subject:           component,
			Message:           messages.LocateNoBuildMsg,
			Fix:               fmt.Sprintf(messages.LocateNoBuildFixFmt, candidateRoot),
			Severity:          warnings.SeverityInfo,
			NoiseSuppressible: true,
		}, false, nil
	}

	buildDir := filepath.Join(candidateRoot, latest)
	installerDir := filepath.Join(buildDir, q.Compiler, installerDirName)
	packages, err := l.packagesIn(installerDir)
	if err != nil {
		return Artifact{}, nil, false, err
	}
	build := Artifact{
		Component:    component,
		BuildDir:     buildDir,
		InstallerDir: installerDir,
	}
	if len(packages) == 0 {
		return build, &warnings.Warning{
			Code:     warnings.CodeComponentNoPackage,
			Subject:  component,
			Message:  messages.LocateNoPackageMsg,
			Fix:      fmt.Sprintf(messages.LocateNoPackageFixFmt, installerDir, l.extension()),
			Details:  []string{buildDir},
			Severity: warnings.SeverityWarning,
		}, true, nil
	}

	build.Package = filepath.Join(installerDir, packages[0])
	if len(packages) > 1 {
		return build, &warnings.Warning{
			Code:     warnings.CodeComponentMultiplePackages,
			Subject:  component,
			Message:  messages.LocateMultiplePackagesMsg,
			Fix:      messages.LocateMultiplePackagesFix,
			Details:  packages,
			Severity: warnings.SeverityWarning,
		}, true, nil
	}
	return build, nil, true, nil
}

// packagesIn returns the package file names in dir, sorted. A missing dir has none.
func (l Locator) packagesIn(dir string) ([]string, error) {
	infos, err := afero.ReadDir(l.FS, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.FsutilReadDirFmt, dir, err)
	}
	ext := strings.ToLower(l.extension())
	var names []string
	for _, fi := range infos {
		if fi.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(fi.Name()), ext) {
			names = append(names, fi.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (l Locator) exportSubpath() string {
	if l.ExportSubpath == "" {
		return DefaultExportSubpath
	}
	return l.ExportSubpath
}

func (l Locator) extension() string {
	if l.Extension == "" {
		return DefaultExtension
	}
	return l.Extension
}

func (l Locator) debug(msg string, keyvals ...any) {
	if l.Logger != nil {
		l.Logger.Debug(msg, keyvals...)
	}
}
