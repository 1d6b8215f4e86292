package testutil

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FakeNipkg simulates the feed side effects of the nipkg tool on an afero filesystem.
// Use its Hook as a Runner.Hook. Added packages are recorded in Packages.stamps
// by base name; Fail, when set, makes the matching subcommand return an error.
type FakeNipkg struct {
	FS   afero.Fs
	Fail map[string]error

	stamp int
}

// Hook handles feed-create, feed-add-pkg and feed-remove-pkg invocations.
// Other commands are accepted without side effects.
func (n *FakeNipkg) Hook(call Call) error {
	if len(call.Args) == 0 {
		return nil
	}
	sub := call.Args[0]
	if err := n.Fail[sub]; err != nil {
		return err
	}
	switch sub {
	case "feed-create":
		feed := call.Args[1]
		if err := afero.WriteFile(n.FS, filepath.Join(feed, "Packages"), nil, 0o644); err != nil {
			return err
		}
		return afero.WriteFile(n.FS, filepath.Join(feed, "Packages.stamps"), nil, 0o644)
	case "feed-add-pkg":
		feed, pkg := call.Args[1], call.Args[2]
		if ok, _ := afero.Exists(n.FS, pkg); !ok {
			return fmt.Errorf("fake nipkg: %s does not exist", pkg)
		}
		n.stamp++
		lines := n.lines(feed)
		lines = append(lines, fmt.Sprintf("%d %s", 1700000000+n.stamp, filepath.Base(pkg)))
		return n.write(feed, lines)
	case "feed-remove-pkg":
		feed, rel := call.Args[1], call.Args[2]
		var kept []string
		for _, line := range n.lines(feed) {
			if strings.HasSuffix(line, " "+rel) {
				continue
			}
			kept = append(kept, line)
		}
		return n.write(feed, kept)
	}
	return nil
}

func (n *FakeNipkg) lines(feed string) []string {
	data, err := afero.ReadFile(n.FS, filepath.Join(feed, "Packages.stamps"))
	if err != nil {
		return nil
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

func (n *FakeNipkg) write(feed string, lines []string) error {
	data := strings.Join(lines, "\r\n")
	if len(lines) > 0 {
		data += "\r\n"
	}
	return afero.WriteFile(n.FS, filepath.Join(feed, "Packages.stamps"), []byte(data), 0o644)
}
