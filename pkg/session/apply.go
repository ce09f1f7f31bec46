package session

import (
	"context"

	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/navigator"
	"github.com/nagarniyantran/civicnav/pkg/resolver"
)

// Change is the outcome of a transition applied to a stored session.
type Change struct {
	Prev domain.AppState
	Next domain.AppState
}

// Changed reports whether the transition modified the session.
func (c Change) Changed() bool {
	return !c.Prev.Equal(c.Next)
}

// Diff returns the delta between the two states, or nil if nothing changed.
func (c Change) Diff() *domain.StateDiff {
	return domain.Diff(&c.Prev, &c.Next)
}

// View describes the screen view of the resulting state.
func (c Change) View() resolver.View {
	return resolver.Describe(resolver.InputFrom(c.Next))
}

// Apply loads the session, runs fn against a Navigator seeded with it, and saves
// the result, all under the session lock. The Navigator carries the manager's
// hooks and logger. If fn fails, nothing is saved.
func (m *Manager) Apply(ctx context.Context, sessionID string, fn func(context.Context, *navigator.Navigator) error) (Change, error) {
	var fnErr error
	prev, next, err := m.Update(ctx, sessionID, func(s domain.AppState) domain.AppState {
		nav := navigator.New(
			navigator.WithInitialState(s),
			navigator.WithSessionID(sessionID),
			navigator.WithLifecycleHooks(m.hooks),
			navigator.WithLogger(m.logger),
		)
		if fnErr = fn(ctx, nav); fnErr != nil {
			return s
		}
		return nav.State()
	})
	if err != nil {
		return Change{}, err
	}
	if fnErr != nil {
		return Change{Prev: prev, Next: prev}, fnErr
	}
	return Change{Prev: prev, Next: next}, nil
}

// Dispatch raises event on the view of the stored session.
// It returns resolver.ErrUnknownEvent, and leaves the session untouched, when
// the active view does not declare event.
func (m *Manager) Dispatch(ctx context.Context, sessionID string, event resolver.EventName, p resolver.Payload) (Change, error) {
	return m.Apply(ctx, sessionID, func(ctx context.Context, nav *navigator.Navigator) error {
		view := resolver.Resolve(resolver.InputFrom(nav.State()), nav)
		_, err := view.Trigger(ctx, event, p)
		return err
	})
}
