package navigator_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/navigator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan domain.AppState) domain.AppState {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for state")
		return domain.AppState{}
	}
}

func TestNavigator_StartsAtSplash(t *testing.T) {
	nav := navigator.New(navigator.WithSessionID("s-1"))

	s := nav.State()
	assert.Equal(t, domain.ScreenSplash, s.CurrentScreen)
	assert.Equal(t, "s-1", s.SessionID)
}

func TestNavigator_InitialState(t *testing.T) {
	saved := domain.AppState{
		SessionID:     "old",
		CurrentScreen: domain.ScreenTrack,
		UserRole:      domain.RoleAdmin,
		Language:      domain.LanguageHindi,
		IsLoggedIn:    true,
	}

	nav := navigator.New(
		navigator.WithSessionID("new"),
		navigator.WithInitialState(saved),
	)

	s := nav.State()
	assert.Equal(t, domain.ScreenTrack, s.CurrentScreen)
	assert.Equal(t, "new", s.SessionID)
	assert.NotNil(t, s.NavigationHistory)

	s = nav.GoBack(context.Background())
	assert.Equal(t, domain.ScreenHome, s.CurrentScreen)
}

func TestNavigator_PublishesChangedStatesOnly(t *testing.T) {
	ctx := context.Background()
	nav := navigator.New()
	states, cancel := nav.Subscribe()
	defer cancel()

	nav.NavigateTo(ctx, domain.ScreenOnboarding, "")
	assert.Equal(t, domain.ScreenOnboarding, receive(t, states).CurrentScreen)

	// Self transition: nothing is published.
	nav.NavigateTo(ctx, domain.ScreenOnboarding, "")
	nav.SetLanguage(ctx, "fr")

	nav.NavigateTo(ctx, domain.ScreenLogin, "")
	got := receive(t, states)
	assert.Equal(t, domain.ScreenLogin, got.CurrentScreen)
	assert.Equal(t, []domain.Screen{domain.ScreenOnboarding}, got.NavigationHistory)
}

func TestNavigator_CancelClosesChannel(t *testing.T) {
	nav := navigator.New()
	states, cancel := nav.Subscribe()

	cancel()
	cancel() // idempotent

	_, ok := <-states
	assert.False(t, ok)

	// Publishing after cancel must not panic.
	nav.NavigateTo(context.Background(), domain.ScreenOnboarding, "")
}

func TestNavigator_Hooks(t *testing.T) {
	ctx := context.Background()

	var mu sync.Mutex
	var kinds []domain.TransitionKind
	var fallbacks, logins []*domain.TransitionEvent

	nav := navigator.New(
		navigator.WithSessionID("hooked"),
		navigator.WithLifecycleHooks(domain.LifecycleHooks{
			OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
				mu.Lock()
				defer mu.Unlock()
				kinds = append(kinds, e.Kind)
			},
			OnFallback: func(_ context.Context, e *domain.TransitionEvent) {
				fallbacks = append(fallbacks, e)
			},
			OnLogin: func(_ context.Context, e *domain.TransitionEvent) {
				logins = append(logins, e)
			},
		}),
	)

	nav.NavigateTo(ctx, domain.ScreenOnboarding, "")
	nav.GoBack(ctx) // empty history, logged out -> login
	nav.Login(ctx, domain.RoleSuperAdmin)
	nav.NavigateTo(ctx, domain.ScreenProfile, "")
	nav.GoBack(ctx)

	assert.Equal(t, []domain.TransitionKind{
		domain.TransitionNavigate,
		domain.TransitionFallback,
		domain.TransitionLogin,
		domain.TransitionNavigate,
		domain.TransitionBack,
	}, kinds)

	require.Len(t, fallbacks, 1)
	assert.Equal(t, domain.ScreenOnboarding, fallbacks[0].From)
	assert.Equal(t, domain.ScreenLogin, fallbacks[0].To)
	assert.Equal(t, "hooked", fallbacks[0].SessionID)

	require.Len(t, logins, 1)
	assert.Equal(t, domain.ScreenSuperAdmin, logins[0].To)
	assert.Equal(t, domain.RoleSuperAdmin, logins[0].Role)

	assert.Equal(t, domain.ScreenSuperAdmin, nav.State().CurrentScreen)
}

func TestNavigator_ConcurrentTransitionsKeepInvariants(t *testing.T) {
	ctx := context.Background()
	nav := navigator.New()
	nav.Login(ctx, domain.RoleCitizen)

	targets := []domain.Screen{domain.ScreenReport, domain.ScreenTrack, domain.ScreenProfile, domain.ScreenFeedback}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if j%5 == 0 {
					nav.GoBack(ctx)
					continue
				}
				nav.NavigateTo(ctx, targets[(offset+j)%len(targets)], "")
			}
		}(i)
	}
	wg.Wait()

	s := nav.State()
	assert.LessOrEqual(t, len(s.NavigationHistory), domain.HistoryLimit)
	assert.NotContains(t, s.NavigationHistory, domain.ScreenSplash)
}
