// Package version resolves the next feed build directory for a version label.
//
// Feed builds live under <feed root>/<label>/<label>.<n>. The next n is one
// more than the trailing number of the most recently modified build directory,
// or 1 when there is none.
package version

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/conn-castle/nifeed/internal/fsutil"
	"github.com/conn-castle/nifeed/internal/messages"
)

// FirstBuildNumber is used when no previous build of a label exists.
const FirstBuildNumber = 1

// Resolved is the outcome of resolving the next feed build.
type Resolved struct {
	// VersionedPath is <feed root>/<label>.
	VersionedPath string
	// Path is the directory of the new feed build.
	Path string
	// Name is the base name of Path, <label>.<n>.
	Name string
	// BuildNumber is n.
	BuildNumber int
	// Previous is the name of the build directory the number was derived from, if any.
	Previous string
}

// NextBuildNumber returns the build number that follows the newest entry.
// A newest entry whose trailing digits do not fit in an int is an error.
func NextBuildNumber(entries []fsutil.Entry) (int, error) {
	latest, ok := fsutil.Latest(entries)
	if !ok {
		return FirstBuildNumber, nil
	}
	n, ok, err := fsutil.TrailingNumber(latest.Name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return FirstBuildNumber, nil
	}
	if n == math.MaxInt {
		return 0, fmt.Errorf(messages.VersionBuildNumberRangeFmt, latest.Name)
	}
	return n + 1, nil
}

// BuildName formats the directory name for build n of label.
func BuildName(label string, n int) string {
	return label + "." + strconv.Itoa(n)
}

// ValidateLabel checks that label can be used verbatim as one path segment.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return errors.New(messages.VersionLabelRequired)
	}
	if label == "." || label == ".." || strings.ContainsAny(label, `/\`) {
		return fmt.Errorf(messages.VersionLabelInvalidFmt, label)
	}
	return nil
}

// Resolve computes the next build directory for label under feedRoot.
// It only reads directory listings; creating the directory is left to the feed.
// A feed root that does not exist or cannot be read yields build 1; a feed root
// or versioned path that exists as a regular file is an error.
func Resolve(fsys afero.Fs, feedRoot string, label string) (Resolved, error) {
	if err := ValidateLabel(label); err != nil {
		return Resolved{}, err
	}
	versioned := filepath.Join(feedRoot, label)
	resolved := Resolved{VersionedPath: versioned}

	entries, err := priorBuilds(fsys, feedRoot, versioned)
	if err != nil {
		return Resolved{}, err
	}
	if latest, ok := fsutil.Latest(entries); ok {
		resolved.Previous = latest.Name
	}
	resolved.BuildNumber, err = NextBuildNumber(entries)
	if err != nil {
		return Resolved{}, err
	}
	resolved.Name = BuildName(label, resolved.BuildNumber)
	resolved.Path = filepath.Join(versioned, resolved.Name)
	return resolved, nil
}

func priorBuilds(fsys afero.Fs, feedRoot string, versioned string) ([]fsutil.Entry, error) {
	info, err := fsys.Stat(feedRoot)
	switch {
	case err == nil && !info.IsDir():
		return nil, fmt.Errorf(messages.FsutilNotDirFmt, feedRoot)
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		// An unreadable feed root is treated the same as an empty one.
		return nil, nil
	}
	return fsutil.Subdirs(fsys, versioned)
}
