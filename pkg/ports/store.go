package ports

import (
	"context"

	"github.com/nagarniyantran/civicnav/pkg/domain"
)

// StateStore defines the interface for persisting navigation sessions.
// This lets a session survive process restarts and be shared between replicas.
type StateStore interface {
	// Save persists the state for a given session ID.
	Save(ctx context.Context, sessionID string, state domain.AppState) error

	// Load retrieves the state for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (domain.AppState, error)

	// Delete removes the state for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of the stored sessions.
	List(ctx context.Context) ([]string, error)
}
