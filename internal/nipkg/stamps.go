package nipkg

import (
	"bufio"
	"io"
	"path"
	"regexp"
	"strings"
)

// stampLine captures the package path that follows the leading stamp digits.
var stampLine = regexp.MustCompile(`^[0-9 ]+([^\r\n]+)`)

// ParseStamps reads a Packages.stamps document and returns the package paths
// it records, relative to the feed directory, in file order.
// Lines without a stamp prefix are ignored.
func ParseStamps(r io.Reader) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := stampLine.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		p := strings.TrimSpace(m[1])
		if p == "" {
			continue
		}
		paths = append(paths, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}

// baseName returns the final element of a stamp path written with either separator.
func baseName(p string) string {
	return path.Base(strings.ReplaceAll(p, `\`, "/"))
}

// matchName returns the first path whose base name starts with name.
func matchName(paths []string, name string) (string, bool) {
	prefix := strings.TrimSpace(name)
	for _, p := range paths {
		if strings.HasPrefix(baseName(p), prefix) {
			return p, true
		}
	}
	return "", false
}
