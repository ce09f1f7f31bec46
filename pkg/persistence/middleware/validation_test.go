package middleware_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/persistence/middleware"
	"github.com/nagarniyantran/civicnav/pkg/ports"
)

func TestValidationMiddleware_Contract(t *testing.T) {
	store := middleware.Chain(NewMockStore(), middleware.NewValidationMiddleware())
	ports.RunStateStoreContract(t, store)
}

func TestValidationMiddleware_RejectsCorruptState(t *testing.T) {
	underlyingStore := NewMockStore()
	store := middleware.NewValidationMiddleware()(underlyingStore)
	ctx := context.Background()

	bad := domain.NewAppState()
	bad.CurrentScreen = "lobby"

	// 1. Save is refused and nothing reaches the underlying store
	if err := store.Save(ctx, "s1", bad); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on save, got %v", err)
	}
	if _, err := underlyingStore.Load(ctx, "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatal("invalid state must not be written")
	}

	// 2. A corrupt state already on disk is refused on load
	_ = underlyingStore.Save(ctx, "s1", bad)
	if _, err := store.Load(ctx, "s1"); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on load, got %v", err)
	}

	// 3. Missing sessions keep their sentinel
	if _, err := store.Load(ctx, "ghost"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

type recordingMiddleware struct {
	name  string
	trace *[]string
	next  ports.StateStore
}

func (m *recordingMiddleware) Save(ctx context.Context, id string, s domain.AppState) error {
	*m.trace = append(*m.trace, m.name)
	return m.next.Save(ctx, id, s)
}
func (m *recordingMiddleware) Load(ctx context.Context, id string) (domain.AppState, error) {
	return m.next.Load(ctx, id)
}
func (m *recordingMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}
func (m *recordingMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func TestChain_Order(t *testing.T) {
	var trace []string
	record := func(name string) middleware.Middleware {
		return func(next ports.StateStore) ports.StateStore {
			return &recordingMiddleware{name: name, trace: &trace, next: next}
		}
	}

	store := middleware.Chain(NewMockStore(), record("outer"), record("inner"))
	if err := store.Save(context.Background(), "s1", domain.NewAppState()); err != nil {
		t.Fatal(err)
	}
	if len(trace) != 2 || trace[0] != "outer" || trace[1] != "inner" {
		t.Errorf("unexpected order: %v", trace)
	}
}
