package runner

import (
	"context"

	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/resolver"
)

// Frame is what the loop presents after every step.
type Frame struct {
	State domain.AppState     `json:"state"`
	View  resolver.Descriptor `json:"view"`
}

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Output presents the active view.
	Output(ctx context.Context, frame Frame) error

	// Input reads one command line. It returns io.EOF when the input is exhausted.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message to the user (help, errors, state dumps).
	// This is distinct from view rendering.
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer transforms markdown before it is written.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)
