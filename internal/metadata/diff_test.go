package metadata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffIdenticalIsEmpty(t *testing.T) {
	diff, truncated := Diff("a", "b", []byte("[]"), []byte("[]"), 0)
	assert.Empty(t, diff)
	assert.False(t, truncated)
}

func TestDiffRendersChanges(t *testing.T) {
	diff, truncated := Diff("1.0.1", "1.0.2", []byte("[\n   1\n]"), []byte("[\n   2\n]"), 0)
	assert.False(t, truncated)
	assert.Contains(t, diff, "--- 1.0.1")
	assert.Contains(t, diff, "+++ 1.0.2")
	assert.Contains(t, diff, "-   1")
	assert.Contains(t, diff, "+   2")
}

func TestDiffTruncates(t *testing.T) {
	var to strings.Builder
	for i := 0; i < 50; i++ {
		to.WriteString("line\n")
	}
	diff, truncated := Diff("a", "b", nil, []byte(to.String()), 10)
	assert.True(t, truncated)
	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	assert.Len(t, lines, 11)
	assert.Contains(t, lines[10], "truncated to 10 lines")
}
