package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nagarniyantran/civicnav/internal/logging"
	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/ports"
	"github.com/nagarniyantran/civicnav/pkg/resolver"
)

// Engine is the navigation controller driven by the loop.
// civicnav.Controller implements it.
type Engine interface {
	State() domain.AppState
	View() resolver.View
	Dispatch(ctx context.Context, event resolver.EventName, p resolver.Payload) (resolver.View, error)
}

// Runner handles the interactive loop over an Engine.
// It uses an IOHandler strategy to abstract the interaction mode (Text vs JSON).
type Runner struct {
	Handler IOHandler

	// Logger is used for internal debug logging.
	Logger *slog.Logger

	// Store persists the state after every changing step. Nil keeps the session ephemeral.
	Store     ports.StateStore
	SessionID string
}

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithStore configures the StateStore for persistence.
func WithStore(store ports.StateStore) Option {
	return func(r *Runner) {
		r.Store = store
	}
}

// WithSessionID sets the session ID used as the store key.
// This is required if WithStore is used.
func WithSessionID(id string) Option {
	return func(r *Runner) {
		r.SessionID = id
	}
}

// New creates a Runner. Without a handler it reads Stdin and writes Stdout.
func New(opts ...Option) *Runner {
	r := &Runner{Logger: logging.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r
}

// Run drives engine until the input ends, an exit command is read, or ctx is done.
// End of input and exit commands return nil.
func (r *Runner) Run(ctx context.Context, engine Engine) error {
	render := true
	for {
		if render {
			frame := Frame{State: engine.State(), View: engine.View().Descriptor()}
			if err := r.Handler.Output(ctx, frame); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
		}
		render = false

		line, err := r.Handler.Input(ctx)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				return nil
			case ctx.Err() != nil:
				return ctx.Err()
			case errors.Is(err, ErrInvalidCommand):
				if err := r.Handler.SystemOutput(ctx, err.Error()); err != nil {
					return err
				}
				continue
			}
			return fmt.Errorf("input error: %w", err)
		}

		cmd, err := ParseCommand(line)
		if errors.Is(err, ErrEmptyCommand) {
			continue
		}
		if err != nil {
			if err := r.Handler.SystemOutput(ctx, err.Error()); err != nil {
				return err
			}
			continue
		}

		if cmd.Builtin() {
			if cmd.Name == CommandExit || cmd.Name == CommandQuit {
				return nil
			}
			if err := r.builtin(ctx, engine, cmd); err != nil {
				return err
			}
			continue
		}

		changed, err := r.step(ctx, engine, cmd)
		if err != nil {
			return err
		}
		render = changed
	}
}

// step raises cmd on the active view. Rejected events are reported, not returned.
func (r *Runner) step(ctx context.Context, engine Engine, cmd Command) (bool, error) {
	event, payload, err := cmd.Event()
	if err != nil {
		return false, r.Handler.SystemOutput(ctx, err.Error())
	}

	before := engine.State()
	view, err := engine.Dispatch(ctx, event, payload)
	if errors.Is(err, resolver.ErrUnknownEvent) {
		return false, r.Handler.SystemOutput(ctx, fmt.Sprintf("%s does not accept %q. Try: %s",
			view.Screen, event, joinEvents(view.Events())))
	}
	if err != nil {
		return false, fmt.Errorf("dispatch error: %w", err)
	}

	after := engine.State()
	changed := !after.Equal(before)
	r.Logger.Debug("play step", "event", event, "screen", after.CurrentScreen, "changed", changed)

	if changed {
		if err := r.saveState(ctx, after); err != nil {
			return false, fmt.Errorf("critical persistence error: %w", err)
		}
	} else {
		if err := r.Handler.SystemOutput(ctx, "no change"); err != nil {
			return false, err
		}
	}
	return changed, nil
}

func (r *Runner) builtin(ctx context.Context, engine Engine, cmd Command) error {
	switch cmd.Name {
	case CommandState:
		data, err := json.MarshalIndent(engine.State(), "", "  ")
		if err != nil {
			return err
		}
		return r.Handler.SystemOutput(ctx, string(data))
	default:
		view := engine.View()
		return r.Handler.SystemOutput(ctx, fmt.Sprintf(
			"Events on %s: %s. Arguments are key=value (screen, issue_id, role, language). Built-ins: help, state, exit.",
			view.Screen, joinEvents(view.Events())))
	}
}

func (r *Runner) saveState(ctx context.Context, state domain.AppState) error {
	if r.Store == nil || r.SessionID == "" {
		return nil
	}
	if err := r.Store.Save(ctx, r.SessionID, state); err != nil {
		return err
	}
	r.Logger.Debug("state saved", "session_id", r.SessionID, "screen", state.CurrentScreen)
	return nil
}

func joinEvents(events []resolver.EventName) string {
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = string(e)
	}
	return strings.Join(names, ", ")
}
