// Package metadata aggregates component manifests into a feed metadata document.
package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/conn-castle/nifeed/internal/fsutil"
	"github.com/conn-castle/nifeed/internal/messages"
)

// Layout of manifests and the generated document.
const (
	ManifestFile = "manifest.json"
	DirName      = "meta-data"
	FileName     = "metadata.json"
	indent       = "   "
)

// Manifest is one component manifest, kept verbatim so key order survives.
type Manifest struct {
	// Source is the manifest path it was read from.
	Source string
	Doc    json.RawMessage
}

// Collect reads the manifest of every installer directory, in order.
// Directories without a manifest are skipped.
func Collect(fsys afero.Fs, installerDirs []string) ([]Manifest, error) {
	var out []Manifest
	for _, dir := range installerDirs {
		path := filepath.Join(dir, ManifestFile)
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf(messages.MetadataReadManifestFmt, path, err)
		}
		var probe any
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil, fmt.Errorf(messages.MetadataInvalidManifestFmt, path, err)
		}
		out = append(out, Manifest{Source: path, Doc: json.RawMessage(bytes.TrimSpace(data))})
	}
	return out, nil
}

// Encode renders manifests as a JSON array indented with three spaces.
func Encode(manifests []Manifest) ([]byte, error) {
	docs := make([]json.RawMessage, 0, len(manifests))
	for _, m := range manifests {
		docs = append(docs, m.Doc)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(docs); err != nil {
		return nil, fmt.Errorf(messages.MetadataEncodeFmt, err)
	}
	return buf.Bytes(), nil
}

// Path returns the metadata document path of a feed.
func Path(feedPath string) string {
	return filepath.Join(feedPath, DirName, FileName)
}

// Write encodes manifests into <feedPath>/meta-data/metadata.json and returns the path.
// An empty manifest list still produces a document holding an empty array.
func Write(fsys afero.Fs, feedPath string, manifests []Manifest) (string, error) {
	data, err := Encode(manifests)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(feedPath, DirName)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf(messages.MetadataCreateDirFmt, dir, err)
	}
	path := Path(feedPath)
	if err := fsutil.WriteFileAtomic(fsys, path, data, 0o644); err != nil {
		return "", fmt.Errorf(messages.MetadataWriteFmt, path, err)
	}
	return path, nil
}

// Previous returns the metadata document of the newest feed build under
// versionedPath, ignoring the build named exclude. ok is false when there is
// no earlier build or it carries no metadata.
func Previous(fsys afero.Fs, versionedPath string, exclude string) (path string, data []byte, ok bool, err error) {
	entries, err := fsutil.Subdirs(fsys, versionedPath)
	if err != nil {
		return "", nil, false, err
	}
	candidates := entries[:0]
	for _, e := range entries {
		if e.Name != exclude {
			candidates = append(candidates, e)
		}
	}
	latest, found := fsutil.Latest(candidates)
	if !found {
		return "", nil, false, nil
	}
	path = Path(filepath.Join(versionedPath, latest.Name))
	data, err = afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, false, nil
		}
		return "", nil, false, fmt.Errorf(messages.MetadataReadPreviousFmt, path, err)
	}
	return path, data, true, nil
}
