package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"":        log.InfoLevel,
		"debug":   log.DebugLevel,
		" INFO ":  log.InfoLevel,
		"warn":    log.WarnLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}

func TestNewWritesWithPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "debug"})
	require.NoError(t, err)

	logger.Debug("selected package", "component", "A")
	out := buf.String()
	assert.Contains(t, out, Prefix)
	assert.Contains(t, out, "selected package")
	assert.Contains(t, out, "component=A")
}

func TestNewQuietRaisesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "debug", Quiet: true})
	require.NoError(t, err)

	logger.Info("hidden")
	assert.Empty(t, buf.String())
	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewQuietKeepsHigherLevel(t *testing.T) {
	logger, err := New(&bytes.Buffer{}, Options{Level: "error", Quiet: true})
	require.NoError(t, err)
	assert.Equal(t, log.ErrorLevel, logger.GetLevel())
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, Options{Level: "loud"})
	require.Error(t, err)
}
