package ports

import "context"

// Record is one document returned by the backend, e.g. an issue report.
type Record map[string]any

// Filter restricts a Fetch to records whose fields equal the given values.
type Filter map[string]any

// Backend is the remote data collaborator used by screen views.
// The navigation core never calls it; views pass its results into transitions.
type Backend interface {
	// Fetch returns the records of collection matching filter.
	// A nil filter matches every record.
	Fetch(ctx context.Context, collection string, filter Filter) ([]Record, error)
}
