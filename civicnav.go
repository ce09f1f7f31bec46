package civicnav

import (
	"context"
	"log/slog"

	"github.com/nagarniyantran/civicnav/internal/logging"
	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/navigator"
	"github.com/nagarniyantran/civicnav/pkg/resolver"
)

// Controller is the high-level entry point of the library.
// It wires one Navigator to the screen resolver for a single foreground session.
type Controller struct {
	nav    *navigator.Navigator
	logger *slog.Logger

	hooks     domain.LifecycleHooks
	initial   *domain.AppState
	sessionID string
}

// Option defines a functional option for configuring the Controller.
type Option func(*Controller)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithInitialState resumes a saved session.
func WithInitialState(state domain.AppState) Option {
	return func(c *Controller) {
		c.initial = &state
	}
}

// WithSessionID tags the session.
func WithSessionID(id string) Option {
	return func(c *Controller) {
		c.sessionID = id
	}
}

// New creates a Controller at the splash screen, or at the initial state if given.
func New(opts ...Option) *Controller {
	c := &Controller{}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	if c.sessionID != "" {
		c.logger = c.logger.With("session_id", c.sessionID)
	}

	navOpts := []navigator.Option{
		navigator.WithLogger(c.logger),
		navigator.WithLifecycleHooks(c.hooks),
	}
	if c.initial != nil {
		navOpts = append(navOpts, navigator.WithInitialState(*c.initial))
	}
	if c.sessionID != "" {
		navOpts = append(navOpts, navigator.WithSessionID(c.sessionID))
	}

	c.nav = navigator.New(navOpts...)
	return c
}

// State returns a snapshot of the session state.
func (c *Controller) State() domain.AppState {
	return c.nav.State()
}

// View resolves the screen view for the current state.
func (c *Controller) View() resolver.View {
	return resolver.Resolve(resolver.InputFrom(c.nav.State()), c.nav)
}

// Dispatch raises event on the active view and returns the next view.
// It fails only when the active view does not declare event.
func (c *Controller) Dispatch(ctx context.Context, event resolver.EventName, p resolver.Payload) (resolver.View, error) {
	view := c.View()
	if _, err := view.Trigger(ctx, event, p); err != nil {
		c.logger.Warn("event rejected", "screen", view.Screen, "event", event)
		return view, err
	}
	return c.View(), nil
}

// Subscribe streams every changed state until the returned cancel func is called.
func (c *Controller) Subscribe() (<-chan domain.AppState, func()) {
	return c.nav.Subscribe()
}

// Navigator exposes the underlying transitions for callers that bypass the views.
func (c *Controller) Navigator() *navigator.Navigator {
	return c.nav
}
