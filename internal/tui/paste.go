package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/verte-zerg/retype/internal/passage"
)

// ErrPasteCancelled is returned when the user aborts the paste form.
var ErrPasteCancelled = errors.New("paste cancelled")

func newPasteForm(text *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Paste text").
				Description("Paste or type text below:").
				CharLimit(0).
				Lines(10).
				Value(text),
		),
	).WithShowHelp(true)
}

// PastePassage runs a standalone paste form and returns its text as a passage.
func PastePassage() (*passage.Passage, error) {
	var text string
	if err := newPasteForm(&text).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrPasteCancelled
		}
		return nil, fmt.Errorf("paste form: %w", err)
	}
	return passage.New(text), nil
}
