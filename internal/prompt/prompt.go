// Package prompt asks the operator to confirm actions with side effects outside the feed.
package prompt

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/conn-castle/nifeed/internal/messages"
	"github.com/conn-castle/nifeed/internal/terminal"
)

// ErrNotInteractive is returned when a prompt is needed but no terminal is attached.
var ErrNotInteractive = errors.New(messages.PromptRequiresTerminal)

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(title string, description string) (bool, error)
}

// Static answers every question with its own value.
type Static bool

// Confirm returns the static answer.
func (s Static) Confirm(string, string) (bool, error) {
	return bool(s), nil
}

// HuhConfirmer renders confirmations with charmbracelet/huh on stderr.
type HuhConfirmer struct {
	isTerminal func() bool
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhConfirmer creates a HuhConfirmer using terminal.IsInteractive.
func NewHuhConfirmer() *HuhConfirmer {
	return &HuhConfirmer{isTerminal: terminal.IsInteractive}
}

// Confirm shows a yes/no form defaulting to no. An aborted form counts as no.
func (c *HuhConfirmer) Confirm(title string, description string) (bool, error) {
	checker := c.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if !checker() {
		return false, ErrNotInteractive
	}

	var value bool
	confirm := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&value)
	if description != "" {
		confirm = confirm.Description(description)
	}
	form := huh.NewForm(huh.NewGroup(confirm))
	form.WithProgramOptions(tea.WithOutput(os.Stderr))

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return value, nil
}
