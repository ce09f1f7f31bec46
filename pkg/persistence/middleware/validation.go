package middleware

import (
	"context"
	"fmt"

	"github.com/nagarniyantran/civicnav/internal/validator"
	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/ports"
)

type validationMiddleware struct {
	next ports.StateStore
}

// NewValidationMiddleware creates a middleware that refuses to save or load a
// state breaking the navigation invariants (unknown screens, roles or languages,
// splash or overflow in the history). Such states can only come from outside
// the transitions, e.g. a hand-edited session file.
func NewValidationMiddleware() Middleware {
	return func(next ports.StateStore) ports.StateStore {
		return &validationMiddleware{next: next}
	}
}

func (m *validationMiddleware) Save(ctx context.Context, sessionID string, state domain.AppState) error {
	if err := validator.ValidateState(state); err != nil {
		return fmt.Errorf("refusing to save session %s: %w", sessionID, err)
	}
	return m.next.Save(ctx, sessionID, state)
}

func (m *validationMiddleware) Load(ctx context.Context, sessionID string) (domain.AppState, error) {
	state, err := m.next.Load(ctx, sessionID)
	if err != nil {
		return domain.AppState{}, err
	}
	if err := validator.ValidateState(state); err != nil {
		return domain.AppState{}, fmt.Errorf("session %s: %w", sessionID, err)
	}
	return state, nil
}

func (m *validationMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *validationMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
