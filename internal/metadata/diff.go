package metadata

import (
	"fmt"
	"strings"

	udiff "github.com/aymanbagabas/go-udiff"

	"github.com/conn-castle/nifeed/internal/messages"
)

// DefaultDiffMaxLines caps rendered diffs when no limit is given.
const DefaultDiffMaxLines = 200

// Diff renders a unified diff between two metadata documents, truncated to
// maxLines lines (DefaultDiffMaxLines when maxLines <= 0). truncated reports
// whether lines were dropped. Identical documents produce an empty diff.
func Diff(fromName string, toName string, from []byte, to []byte, maxLines int) (diff string, truncated bool) {
	limit := maxLines
	if limit <= 0 {
		limit = DefaultDiffMaxLines
	}
	rendered := udiff.Unified(fromName, toName, withTrailingNewline(string(from)), withTrailingNewline(string(to)))
	lines := splitLines(rendered)
	if len(lines) <= limit {
		return withTrailingNewline(strings.Join(lines, "\n")), false
	}
	kept := append(lines[:limit:limit], fmt.Sprintf(messages.MetadataDiffTruncatedFmt, limit))
	return withTrailingNewline(strings.Join(kept, "\n")), true
}

func splitLines(content string) []string {
	trimmed := strings.TrimRight(content, "\n")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "\n")
}

func withTrailingNewline(content string) string {
	if content == "" || strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}
