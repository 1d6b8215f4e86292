package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
)

// BaseTime anchors fixture modification times so ordering is explicit.
var BaseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// Build describes one component build inside an export tree.
type Build struct {
	Component string
	Release   string
	BuildDir  string
	Compiler  string
	// Packages are file names written into the installer directory.
	Packages []string
	// Manifest, when non-empty, is written as manifest.json next to the packages.
	Manifest string
	// Age orders builds: the build directory mtime is BaseTime plus Age.
	Age time.Duration
}

// ExportSubpath is the default export layout between a component and its release directories.
const ExportSubpath = "export/release"

// InstallerDir returns the installer directory of b under root.
func (b Build) InstallerDir(root string) string {
	return filepath.Join(b.BuildPath(root), b.Compiler, "installer")
}

// BuildPath returns the build directory of b under root.
func (b Build) BuildPath(root string) string {
	return filepath.Join(root, b.Component, filepath.FromSlash(ExportSubpath), b.Release, b.BuildDir)
}

// WriteBuild materializes b under root on fsys and stamps the build directory mtime.
func WriteBuild(t *testing.T, fsys afero.Fs, root string, b Build) {
	t.Helper()
	dir := b.InstallerDir(root)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	for _, name := range b.Packages {
		if err := afero.WriteFile(fsys, filepath.Join(dir, name), []byte("pkg:"+name), 0o644); err != nil {
			t.Fatalf("write package %s: %v", name, err)
		}
	}
	if b.Manifest != "" {
		if err := afero.WriteFile(fsys, filepath.Join(dir, "manifest.json"), []byte(b.Manifest), 0o644); err != nil {
			t.Fatalf("write manifest: %v", err)
		}
	}
	stamp := BaseTime.Add(b.Age)
	if err := fsys.Chtimes(b.BuildPath(root), stamp, stamp); err != nil {
		t.Fatalf("chtimes %s: %v", b.BuildPath(root), err)
	}
}

// TouchDir creates dir on fsys with an mtime of BaseTime plus age.
func TouchDir(t *testing.T, fsys afero.Fs, dir string, age time.Duration) {
	t.Helper()
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	stamp := BaseTime.Add(age)
	if err := fsys.Chtimes(dir, stamp, stamp); err != nil {
		t.Fatalf("chtimes %s: %v", dir, err)
	}
}
