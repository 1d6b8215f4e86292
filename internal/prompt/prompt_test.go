package prompt

import (
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withRunForm(t *testing.T, fn func(*huh.Form) error) {
	t.Helper()
	orig := runFormFunc
	t.Cleanup(func() { runFormFunc = orig })
	runFormFunc = fn
}

func TestStatic(t *testing.T) {
	ok, err := Static(true).Confirm("publish?", "")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Static(false).Confirm("publish?", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHuhConfirmerRequiresTerminal(t *testing.T) {
	called := false
	withRunForm(t, func(*huh.Form) error {
		called = true
		return nil
	})
	c := &HuhConfirmer{isTerminal: func() bool { return false }}

	_, err := c.Confirm("publish?", "")
	require.ErrorIs(t, err, ErrNotInteractive)
	assert.False(t, called)
}

func TestHuhConfirmerRunsForm(t *testing.T) {
	called := false
	withRunForm(t, func(form *huh.Form) error {
		assert.NotNil(t, form)
		called = true
		return nil
	})
	c := &HuhConfirmer{isTerminal: func() bool { return true }}

	ok, err := c.Confirm("publish?", "details")
	require.NoError(t, err)
	assert.True(t, called)
	assert.False(t, ok)
}

func TestHuhConfirmerAbortIsNo(t *testing.T) {
	withRunForm(t, func(*huh.Form) error { return huh.ErrUserAborted })
	c := &HuhConfirmer{isTerminal: func() bool { return true }}

	ok, err := c.Confirm("publish?", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHuhConfirmerPropagatesFormError(t *testing.T) {
	boom := errors.New("tty gone")
	withRunForm(t, func(*huh.Form) error { return boom })
	c := &HuhConfirmer{isTerminal: func() bool { return true }}

	_, err := c.Confirm("publish?", "")
	require.ErrorIs(t, err, boom)
}
