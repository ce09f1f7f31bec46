package civicnav_test

import (
	"context"
	"testing"

	"github.com/nagarniyantran/civicnav"
	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_StartsAtSplash(t *testing.T) {
	ctrl := civicnav.New()

	view := ctrl.View()
	assert.Equal(t, domain.ScreenSplash, view.Screen)
	assert.Equal(t, []resolver.EventName{resolver.EventComplete}, view.Events())
	assert.Equal(t, domain.NewAppState(), ctrl.State())
}

func TestController_CitizenJourney(t *testing.T) {
	ctx := context.Background()
	ctrl := civicnav.New(civicnav.WithSessionID("s-1"))

	steps := []struct {
		event   resolver.EventName
		payload resolver.Payload
		want    domain.Screen
	}{
		{resolver.EventComplete, resolver.Payload{}, domain.ScreenOnboarding},
		{resolver.EventComplete, resolver.Payload{}, domain.ScreenLogin},
		{resolver.EventLanguageChange, resolver.Payload{Language: domain.LanguageMarathi}, domain.ScreenLogin},
		{resolver.EventLogin, resolver.Payload{Role: domain.RoleCitizen}, domain.ScreenHome},
		{resolver.EventNavigate, resolver.Payload{Screen: domain.ScreenReport}, domain.ScreenReport},
		{resolver.EventSubmit, resolver.Payload{IssueID: "NM2024042"}, domain.ScreenConfirmation},
		{resolver.EventTrack, resolver.Payload{}, domain.ScreenTrack},
		{resolver.EventFeedback, resolver.Payload{IssueID: "NM2024042"}, domain.ScreenFeedback},
	}
	for _, step := range steps {
		view, err := ctrl.Dispatch(ctx, step.event, step.payload)
		require.NoError(t, err, "event %s", step.event)
		require.Equal(t, step.want, view.Screen, "event %s", step.event)
	}

	state := ctrl.State()
	assert.Equal(t, "s-1", state.SessionID)
	assert.Equal(t, domain.LanguageMarathi, state.Language)
	assert.Equal(t, "NM2024042", state.CurrentIssueID)
	assert.Equal(t, []domain.Screen{
		domain.ScreenHome, domain.ScreenReport, domain.ScreenConfirmation, domain.ScreenTrack,
	}, state.NavigationHistory)
	assert.Equal(t, resolver.Params{IssueID: "NM2024042"}, ctrl.View().Params)
}

func TestController_RejectsUndeclaredEvent(t *testing.T) {
	ctrl := civicnav.New()

	view, err := ctrl.Dispatch(context.Background(), resolver.EventLogin, resolver.Payload{Role: domain.RoleAdmin})
	require.ErrorIs(t, err, resolver.ErrUnknownEvent)
	assert.Equal(t, domain.ScreenSplash, view.Screen)
	assert.False(t, ctrl.State().IsLoggedIn)
}

func TestController_ResumesInitialState(t *testing.T) {
	saved := domain.AppState{
		CurrentScreen:     domain.ScreenProfile,
		UserRole:          domain.RoleAdmin,
		Language:          domain.LanguageHindi,
		IsLoggedIn:        true,
		NavigationHistory: []domain.Screen{domain.ScreenAdmin},
	}
	ctrl := civicnav.New(civicnav.WithInitialState(saved))

	view := ctrl.View()
	assert.Equal(t, domain.ScreenProfile, view.Screen)
	assert.Equal(t, domain.LanguageHindi, view.Params.Language)

	view, err := ctrl.Dispatch(context.Background(), resolver.EventBack, resolver.Payload{})
	require.NoError(t, err)
	assert.Equal(t, domain.ScreenAdmin, view.Screen)
	assert.Empty(t, ctrl.State().NavigationHistory)
}

func TestController_HooksAndSubscribe(t *testing.T) {
	ctx := context.Background()
	var kinds []domain.TransitionKind
	ctrl := civicnav.New(civicnav.WithLifecycleHooks(domain.LifecycleHooks{
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			kinds = append(kinds, e.Kind)
		},
	}))

	updates, cancel := ctrl.Subscribe()
	defer cancel()

	_, err := ctrl.Dispatch(ctx, resolver.EventComplete, resolver.Payload{})
	require.NoError(t, err)
	ctrl.Navigator().GoBack(ctx)

	assert.Equal(t, []domain.TransitionKind{domain.TransitionNavigate, domain.TransitionFallback}, kinds)

	first := <-updates
	assert.Equal(t, domain.ScreenOnboarding, first.CurrentScreen)
	second := <-updates
	assert.Equal(t, domain.ScreenLogin, second.CurrentScreen)
}
