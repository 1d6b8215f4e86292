// Package fsutil holds the filesystem helpers shared by the feed tooling.
// Directory selection is split into pure functions over Entry values so the
// "newest build" rules can be tested without touching a filesystem.
package fsutil

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/conn-castle/nifeed/internal/messages"
)

// Entry is a directory name paired with its modification time.
type Entry struct {
	Name    string
	ModTime time.Time
}

var trailingDigits = regexp.MustCompile(`[0-9]+$`)

// Latest returns the most recently modified entry.
// Among entries with identical modification times the highest trailing number
// wins, then the greatest name, so the result does not depend on the order the
// directory listing was returned in.
func Latest(entries []Entry) (Entry, bool) {
	if len(entries) == 0 {
		return Entry{}, false
	}
	best := entries[0]
	for _, e := range entries[1:] {
		switch {
		case e.ModTime.After(best.ModTime):
			best = e
		case e.ModTime.Equal(best.ModTime) && tieBreak(e.Name, best.Name) > 0:
			best = e
		}
	}
	return best, true
}

// tieBreak orders a and b by their trailing numbers, then by name.
// Digits are compared as strings so arbitrarily long runs never overflow.
func tieBreak(a string, b string) int {
	if c := compareDigits(trailingDigits.FindString(a), trailingDigits.FindString(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// compareDigits compares two runs of decimal digits numerically.
// An empty run sorts below any number.
func compareDigits(a string, b string) int {
	if a == "" || b == "" {
		return cmp.Compare(len(a), len(b))
	}
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// TrailingNumber parses the trailing run of decimal digits in name.
// It reports false when name has no trailing digits and an error when the
// digits do not fit in an int.
func TrailingNumber(name string) (int, bool, error) {
	digits := trailingDigits.FindString(name)
	if digits == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false, fmt.Errorf(messages.FsutilTrailingNumberFmt, name, err)
	}
	return n, true, nil
}

// Subdirs lists the immediate subdirectories of dir.
// A missing dir yields an empty list and a nil error; a dir that exists but is
// not a directory is an error.
func Subdirs(fsys afero.Fs, dir string) ([]Entry, error) {
	info, err := fsys.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.FsutilReadDirFmt, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf(messages.FsutilNotDirFmt, dir)
	}
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf(messages.FsutilReadDirFmt, dir, err)
	}
	entries := make([]Entry, 0, len(infos))
	for _, fi := range infos {
		if !fi.IsDir() {
			continue
		}
		entries = append(entries, Entry{Name: fi.Name(), ModTime: fi.ModTime()})
	}
	return entries, nil
}

// LatestSubdir returns the name of the most recently modified subdirectory of dir.
func LatestSubdir(fsys afero.Fs, dir string) (string, bool, error) {
	entries, err := Subdirs(fsys, dir)
	if err != nil {
		return "", false, err
	}
	latest, ok := Latest(entries)
	return latest.Name, ok, nil
}
