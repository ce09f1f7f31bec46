package tui

import (
	"github.com/charmbracelet/glamour"
	"github.com/nagarniyantran/civicnav/pkg/runner"
)

// NewRenderer returns a runner.ContentRenderer that renders markdown using glamour.
// The style follows the terminal background. If glamour cannot be initialized
// the markdown is passed through untouched.
func NewRenderer() runner.ContentRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
