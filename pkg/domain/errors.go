package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a session ID cannot be found in the store.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExists is returned when creating a session under an ID already in use.
	ErrSessionExists = errors.New("session already exists")

	// ErrInvalidSessionID is returned by stores for IDs they cannot use as a key.
	ErrInvalidSessionID = errors.New("invalid session id")

	// ErrCollectionNotFound is returned by a backend asked for a collection it does not hold.
	ErrCollectionNotFound = errors.New("collection not found")
)

// ErrInvalidState is returned for a stored state that breaks the navigation invariants.
var ErrInvalidState = errors.New("invalid session state")
