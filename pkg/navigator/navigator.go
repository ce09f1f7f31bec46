package navigator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nagarniyantran/civicnav/internal/logging"
	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/ports"
)

// subscriberBuffer is the number of states a slow subscriber may lag behind.
const subscriberBuffer = 16

// Navigator owns one AppState and serializes every transition applied to it.
type Navigator struct {
	mu    sync.Mutex
	state domain.AppState

	subMu       sync.RWMutex
	subscribers map[chan domain.AppState]struct{}

	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	now       func() time.Time
	sessionID string
}

// Ensure Navigator can back a screen view.
var _ ports.Transitions = (*Navigator)(nil)

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets a structured logger for transition logs.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(n *Navigator) {
		n.hooks = hooks
	}
}

// WithInitialState resumes from a previously saved state instead of the splash screen.
func WithInitialState(state domain.AppState) Option {
	return func(n *Navigator) {
		n.state = state.Snapshot()
		if n.state.NavigationHistory == nil {
			n.state.NavigationHistory = []domain.Screen{}
		}
	}
}

// WithSessionID tags the state and every emitted event with id.
// It takes precedence over the session ID of an initial state.
func WithSessionID(id string) Option {
	return func(n *Navigator) {
		n.sessionID = id
	}
}

// New creates a Navigator at the start-of-session state.
func New(opts ...Option) *Navigator {
	n := &Navigator{
		state:       domain.NewAppState(),
		subscribers: make(map[chan domain.AppState]struct{}),
		logger:      logging.NewNop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.sessionID != "" {
		n.state.SessionID = n.sessionID
	}
	return n
}

// State returns a snapshot of the current state.
func (n *Navigator) State() domain.AppState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state.Snapshot()
}

// NavigateTo moves forward to screen with issueID in focus.
func (n *Navigator) NavigateTo(ctx context.Context, screen domain.Screen, issueID string) domain.AppState {
	return n.apply(ctx, domain.TransitionNavigate, func(s domain.AppState) domain.AppState {
		return domain.NavigateTo(s, screen, issueID)
	})
}

// GoBack restores the previous screen or falls back to home/login.
func (n *Navigator) GoBack(ctx context.Context) domain.AppState {
	return n.apply(ctx, domain.TransitionBack, domain.GoBack)
}

// Login authenticates the session and routes by role.
func (n *Navigator) Login(ctx context.Context, role domain.Role) domain.AppState {
	return n.apply(ctx, domain.TransitionLogin, func(s domain.AppState) domain.AppState {
		return domain.Login(s, role)
	})
}

// SetUserRole changes the session role.
func (n *Navigator) SetUserRole(ctx context.Context, role domain.Role) domain.AppState {
	return n.apply(ctx, domain.TransitionSetRole, func(s domain.AppState) domain.AppState {
		return domain.SetUserRole(s, role)
	})
}

// SetLanguage changes the session locale.
func (n *Navigator) SetLanguage(ctx context.Context, language domain.Language) domain.AppState {
	return n.apply(ctx, domain.TransitionSetLanguage, func(s domain.AppState) domain.AppState {
		return domain.SetLanguage(s, language)
	})
}

// Subscribe returns a channel receiving every changed state, and a function that
// stops the subscription and closes the channel.
// States are dropped for subscribers that fall more than a few updates behind.
func (n *Navigator) Subscribe() (<-chan domain.AppState, func()) {
	ch := make(chan domain.AppState, subscriberBuffer)

	n.subMu.Lock()
	n.subscribers[ch] = struct{}{}
	n.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.subMu.Lock()
			delete(n.subscribers, ch)
			close(ch)
			n.subMu.Unlock()
		})
	}
}

// apply is the single update entry point. The transition and publication run
// under the state lock so subscribers observe states in commit order; hooks run
// after the lock is released.
func (n *Navigator) apply(ctx context.Context, kind domain.TransitionKind, fn func(domain.AppState) domain.AppState) domain.AppState {
	n.mu.Lock()
	prev := n.state
	fallback := kind == domain.TransitionBack && domain.IsFallback(prev)
	next := fn(prev)
	changed := !next.Equal(prev)
	if changed {
		n.state = next
		n.publish(next)
	}
	current := n.state.Snapshot()
	n.mu.Unlock()

	if fallback {
		kind = domain.TransitionFallback
	}

	event := &domain.TransitionEvent{
		Timestamp: n.now(),
		Kind:      kind,
		SessionID: current.SessionID,
		From:      prev.CurrentScreen,
		To:        current.CurrentScreen,
		IssueID:   current.CurrentIssueID,
		Role:      current.UserRole,
		Changed:   changed,
	}

	n.logger.Debug("navigation transition",
		"kind", kind,
		"session_id", current.SessionID,
		"from", prev.CurrentScreen,
		"to", current.CurrentScreen,
		"history_len", len(current.NavigationHistory),
		"changed", changed,
	)

	n.emit(ctx, event)
	return current
}

func (n *Navigator) emit(ctx context.Context, event *domain.TransitionEvent) {
	if n.hooks.OnTransition != nil {
		n.hooks.OnTransition(ctx, event)
	}
	if event.Kind == domain.TransitionFallback && n.hooks.OnFallback != nil {
		n.hooks.OnFallback(ctx, event)
	}
	if event.Kind == domain.TransitionLogin && n.hooks.OnLogin != nil {
		n.hooks.OnLogin(ctx, event)
	}
}

func (n *Navigator) publish(state domain.AppState) {
	n.subMu.RLock()
	defer n.subMu.RUnlock()

	for ch := range n.subscribers {
		select {
		case ch <- state.Snapshot():
		default:
			n.logger.Warn("navigator: subscriber buffer full, dropping state",
				"session_id", state.SessionID,
				"screen", state.CurrentScreen,
			)
		}
	}
}
