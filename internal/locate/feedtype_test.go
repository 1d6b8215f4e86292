package locate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeedType(t *testing.T) {
	cases := map[string]FeedType{
		"":        FeedTypeRelease,
		"release": FeedTypeRelease,
		"test":    FeedTypeTest,
		"all":     FeedTypeAll,
	}
	for in, want := range cases {
		got, err := ParseFeedType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFeedType("nightly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nightly")
}

func TestParseFeedTypeIsCaseSensitive(t *testing.T) {
	for _, in := range []string{"RELEASE", "Test", " all", "all "} {
		_, err := ParseFeedType(in)
		assert.Error(t, err, in)
	}
}

func TestExclusionsActive(t *testing.T) {
	ex := Exclusions{
		FeedTypeAll:     NewSet("x"),
		FeedTypeRelease: NewSet("r"),
		FeedTypeTest:    NewSet("t"),
	}
	assert.Equal(t, []string{"r", "x"}, ex.Active(FeedTypeRelease).Sorted())
	assert.Equal(t, []string{"t", "x"}, ex.Active(FeedTypeTest).Sorted())
	assert.Equal(t, []string{"x"}, ex.Active(FeedTypeAll).Sorted())

	var empty Exclusions
	assert.Empty(t, empty.Active(FeedTypeRelease))
}

func TestSetContainsIsExact(t *testing.T) {
	s := NewSet("monitor")
	assert.True(t, s.Contains("monitor"))
	assert.False(t, s.Contains("Monitor"))
	assert.False(t, s.Contains("monitor2"))
}
