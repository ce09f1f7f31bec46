package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagarniyantran/civicnav/pkg/adapters/memory"
	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunStateStoreContract(t, store)
}

func TestMemoryStore_HistoryIsolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	state := domain.Login(domain.NewAppState(), domain.RoleCitizen)
	state = domain.NavigateTo(state, domain.ScreenReport, "")
	require.NoError(t, store.Save(ctx, "s1", state))

	// Mutating the caller's slice must not reach the stored copy.
	state.NavigationHistory[0] = domain.ScreenProfile

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Screen{domain.ScreenHome}, loaded.NavigationHistory)

	loaded.NavigationHistory[0] = domain.ScreenAdmin
	again, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Screen{domain.ScreenHome}, again.NavigationHistory)
}

func TestMemoryStore_ListSorted(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	for _, id := range []string{"kolhapur", "akola", "nagpur"} {
		require.NoError(t, store.Save(ctx, id, domain.NewAppState()))
	}

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"akola", "kolhapur", "nagpur"}, ids)
}
