// Package templates holds the files nifeed seeds for new users.
package templates

import (
	"embed"
	"io/fs"
	"path"
)

//go:embed files
var files embed.FS

// ConfigFile is the starter configuration written by `nifeed init`.
const ConfigFile = "nifeed.toml"

// Read returns the embedded template at name.
func Read(name string) ([]byte, error) {
	return fs.ReadFile(files, path.Join("files", name))
}
