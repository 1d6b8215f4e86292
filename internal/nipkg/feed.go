// Package nipkg manages an NI Package Manager feed directory by driving the nipkg tool.
package nipkg

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/conn-castle/nifeed/internal/command"
	"github.com/conn-castle/nifeed/internal/fsutil"
	"github.com/conn-castle/nifeed/internal/messages"
)

// DefaultToolPath is where NI Package Manager installs nipkg.
const DefaultToolPath = "C:/Program Files/National Instruments/NI Package Manager/nipkg.exe"

// PackageExtension is the file extension of installer packages.
const PackageExtension = ".nipkg"

// Feed index files maintained by nipkg.
const (
	IndexFile  = "Packages"
	StampsFile = "Packages.stamps"
)

// Sentinel errors for feed operations.
var (
	ErrFeedNotFound        = errors.New(messages.NipkgFeedNotFound)
	ErrInvalidPackage      = errors.New(messages.NipkgInvalidPackage)
	ErrPackageNotFound     = errors.New(messages.NipkgPackageNotFound)
	ErrPackageNameNotFound = errors.New(messages.NipkgNameNotFound)
	ErrDestinationExists   = errors.New(messages.NipkgDestinationExists)
)

// Feed is a package feed directory.
type Feed struct {
	Path string
	// Tool is the nipkg executable; empty means DefaultToolPath.
	Tool   string
	Runner command.Runner
	FS     afero.Fs
	Logger *log.Logger
}

// AddOptions controls where a package is ingested from.
type AddOptions struct {
	// Destination, when set, is where the package is ingested from instead of its source.
	Destination string
	// CreateDestination copies the source to Destination, creating parent directories.
	CreateDestination bool
	// Overwrite copies the source to Destination, replacing an existing file.
	Overwrite bool
}

// Exists reports whether the feed index is present.
func (f *Feed) Exists() (bool, error) {
	_, err := f.FS.Stat(filepath.Join(f.Path, IndexFile))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Open checks that the feed exists, creating it when createIfNecessary is set.
func (f *Feed) Open(ctx context.Context, createIfNecessary bool) error {
	ok, err := f.Exists()
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if !createIfNecessary {
		return fmt.Errorf(messages.NipkgFeedNotFoundFmt, ErrFeedNotFound, f.Path)
	}
	return f.Create(ctx)
}

// Create makes the feed directory and initializes an empty feed in it.
func (f *Feed) Create(ctx context.Context) error {
	if err := f.FS.MkdirAll(f.Path, 0o755); err != nil {
		return fmt.Errorf(messages.NipkgCreateDirFmt, f.Path, err)
	}
	f.debug("creating feed", "path", f.Path)
	if err := f.Runner.Run(ctx, f.tool(), "feed-create", f.Path); err != nil {
		return fmt.Errorf(messages.NipkgCreateFeedFmt, f.Path, err)
	}
	return nil
}

// AddPackage ingests source into the feed.
// The source is validated before any process runs.
func (f *Feed) AddPackage(ctx context.Context, source string, opts AddOptions) error {
	if _, err := f.FS.Stat(source); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf(messages.NipkgPackageNotFoundFmt, source, ErrPackageNotFound)
		}
		return err
	}
	if !strings.EqualFold(filepath.Ext(source), PackageExtension) {
		return fmt.Errorf(messages.NipkgInvalidPackageFmt, source, ErrInvalidPackage)
	}

	pkg := source
	if opts.Destination != "" {
		pkg = opts.Destination
		if opts.CreateDestination || opts.Overwrite {
			if err := f.copyToDestination(source, opts); err != nil {
				return err
			}
		}
	}

	f.debug("adding package", "feed", f.Path, "package", pkg)
	if err := f.Runner.Run(ctx, f.tool(), "feed-add-pkg", f.Path, pkg); err != nil {
		return fmt.Errorf(messages.NipkgAddPackageFmt, pkg, f.Path, err)
	}
	return nil
}

func (f *Feed) copyToDestination(source string, opts AddOptions) error {
	dst := opts.Destination
	exists, err := afero.Exists(f.FS, dst)
	if err != nil {
		return err
	}
	if exists && !opts.Overwrite {
		return fmt.Errorf(messages.NipkgDestinationExistsFmt, dst, ErrDestinationExists)
	}
	dir := filepath.Dir(dst)
	if err := f.FS.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf(messages.NipkgCreateDestDirFmt, dir, err)
	}
	return fsutil.CopyFile(f.FS, source, dst)
}

// RemovePackage removes the first package whose file name starts with name.
func (f *Feed) RemovePackage(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(messages.NipkgNameRequired)
	}
	rel, ok, err := f.FindPackage(name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf(messages.NipkgNameNotFoundFmt, ErrPackageNameNotFound, name)
	}
	f.debug("removing package", "feed", f.Path, "package", rel)
	if err := f.Runner.Run(ctx, f.tool(), "feed-remove-pkg", f.Path, rel); err != nil {
		return fmt.Errorf(messages.NipkgRemovePackageFmt, rel, f.Path, err)
	}
	return nil
}

// ListPackages returns the package paths in the feed, relative to the feed directory.
// A feed without a stamp file has no packages.
func (f *Feed) ListPackages() ([]string, error) {
	stamps := filepath.Join(f.Path, StampsFile)
	file, err := f.FS.Open(stamps)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.NipkgReadStampsFmt, stamps, err)
	}
	defer func() { _ = file.Close() }()

	paths, err := ParseStamps(file)
	if err != nil {
		return nil, fmt.Errorf(messages.NipkgReadStampsFmt, stamps, err)
	}
	return paths, nil
}

// FindPackage returns the relative path of the first package whose file name starts with name.
func (f *Feed) FindPackage(name string) (string, bool, error) {
	paths, err := f.ListPackages()
	if err != nil {
		return "", false, err
	}
	rel, ok := matchName(paths, name)
	return rel, ok, nil
}

// PackageExists reports whether a package whose file name starts with name is in the feed.
func (f *Feed) PackageExists(name string) (bool, error) {
	_, ok, err := f.FindPackage(name)
	return ok, err
}

func (f *Feed) tool() string {
	if f.Tool == "" {
		return DefaultToolPath
	}
	return f.Tool
}

func (f *Feed) debug(msg string, keyvals ...any) {
	if f.Logger != nil {
		f.Logger.Debug(msg, keyvals...)
	}
}
