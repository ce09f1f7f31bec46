package middleware_test

import (
	"context"
	"sort"

	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/ports"
)

// MockStore is a simple map-based store for testing middleware.
// It stores copies of the states as given, without any checks.
type MockStore struct {
	data map[string]domain.AppState
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]domain.AppState),
	}
}

func (s *MockStore) Save(ctx context.Context, sessionID string, state domain.AppState) error {
	s.data[sessionID] = state.Snapshot()
	return nil
}

func (s *MockStore) Load(ctx context.Context, sessionID string) (domain.AppState, error) {
	state, ok := s.data[sessionID]
	if !ok {
		return domain.AppState{}, domain.ErrSessionNotFound
	}
	return state.Snapshot(), nil
}

func (s *MockStore) Delete(ctx context.Context, sessionID string) error {
	delete(s.data, sessionID)
	return nil
}

func (s *MockStore) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

var _ ports.StateStore = (*MockStore)(nil)
