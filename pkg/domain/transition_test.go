package domain_test

import (
	"fmt"
	"testing"

	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loggedInAt(screen domain.Screen, history ...domain.Screen) domain.AppState {
	s := domain.NewAppState()
	s.IsLoggedIn = true
	s.CurrentScreen = screen
	s.NavigationHistory = append([]domain.Screen{}, history...)
	return s
}

func TestNewAppState_Defaults(t *testing.T) {
	s := domain.NewAppState()

	assert.Equal(t, domain.ScreenSplash, s.CurrentScreen)
	assert.Equal(t, domain.RoleCitizen, s.UserRole)
	assert.Equal(t, domain.LanguageEnglish, s.Language)
	assert.False(t, s.IsLoggedIn)
	assert.Empty(t, s.CurrentIssueID)
	assert.Empty(t, s.NavigationHistory)
}

func TestNavigateTo_SelfTransitionIsNoop(t *testing.T) {
	for _, screen := range domain.Screens() {
		t.Run(string(screen), func(t *testing.T) {
			s := loggedInAt(screen, domain.ScreenHome)
			s.CurrentIssueID = "NM2024010"

			next := domain.NavigateTo(s, screen, "other")
			assert.True(t, next.Equal(s), "self navigation must not change state")
		})
	}
}

func TestNavigateTo_UnknownScreenIsAbsorbed(t *testing.T) {
	s := loggedInAt(domain.ScreenHome)

	next := domain.NavigateTo(s, domain.Screen("settings"), "")
	assert.True(t, next.Equal(s))
}

func TestNavigateTo_PushesAndSetsIssue(t *testing.T) {
	s := loggedInAt(domain.ScreenHome)

	next := domain.NavigateTo(s, domain.ScreenReport, "NM2024002")
	assert.Equal(t, domain.ScreenReport, next.CurrentScreen)
	assert.Equal(t, []domain.Screen{domain.ScreenHome}, next.NavigationHistory)
	assert.Equal(t, "NM2024002", next.CurrentIssueID)

	// Omitting the issue overwrites it with nothing.
	next = domain.NavigateTo(next, domain.ScreenTrack, "")
	assert.Empty(t, next.CurrentIssueID)
	assert.Equal(t, []domain.Screen{domain.ScreenHome, domain.ScreenReport}, next.NavigationHistory)
}

func TestNavigateTo_DoesNotAliasInput(t *testing.T) {
	s := loggedInAt(domain.ScreenReport, domain.ScreenHome)

	next := domain.NavigateTo(s, domain.ScreenConfirmation, "X")
	next.NavigationHistory[0] = domain.ScreenProfile

	assert.Equal(t, []domain.Screen{domain.ScreenHome}, s.NavigationHistory)
}

func TestNavigateTo_FromSplashLeavesHistory(t *testing.T) {
	s := domain.NewAppState()

	next := domain.NavigateTo(s, domain.ScreenOnboarding, "")
	assert.Equal(t, domain.ScreenOnboarding, next.CurrentScreen)
	assert.Empty(t, next.NavigationHistory)

	next = domain.NavigateTo(next, domain.ScreenLogin, "")
	assert.Equal(t, []domain.Screen{domain.ScreenOnboarding}, next.NavigationHistory)
}

func TestNavigateTo_HistoryBound(t *testing.T) {
	cycle := []domain.Screen{
		domain.ScreenReport,
		domain.ScreenConfirmation,
		domain.ScreenTrack,
		domain.ScreenFeedback,
		domain.ScreenProfile,
		domain.ScreenHome,
	}

	s := loggedInAt(domain.ScreenHome)
	var visited []domain.Screen
	for i := 0; i < 40; i++ {
		visited = append(visited, s.CurrentScreen)
		s = domain.NavigateTo(s, cycle[i%len(cycle)], "")
		require.LessOrEqual(t, len(s.NavigationHistory), domain.HistoryLimit, "step %d", i)
		assert.NotContains(t, s.NavigationHistory, domain.ScreenSplash)
	}

	// Sliding window keeps the newest entries in order.
	assert.Equal(t, visited[len(visited)-domain.HistoryLimit:], s.NavigationHistory)
}

func TestGoBack_RestoresPreviousScreen(t *testing.T) {
	s := loggedInAt(domain.ScreenTrack, domain.ScreenHome, domain.ScreenReport)
	s.CurrentIssueID = "NM2024003"

	next := domain.GoBack(s)
	assert.Equal(t, domain.ScreenReport, next.CurrentScreen)
	assert.Equal(t, []domain.Screen{domain.ScreenHome}, next.NavigationHistory)
	assert.Empty(t, next.CurrentIssueID)
}

func TestGoBack_PreservesIssueOnlyForFeedback(t *testing.T) {
	t.Run("restored feedback keeps issue", func(t *testing.T) {
		s := loggedInAt(domain.ScreenFeedback, domain.ScreenTrack)
		s.CurrentIssueID = "X"

		s = domain.NavigateTo(s, domain.ScreenProfile, "X")
		next := domain.GoBack(s)

		assert.Equal(t, domain.ScreenFeedback, next.CurrentScreen)
		assert.Equal(t, "X", next.CurrentIssueID)
	})

	t.Run("other screen clears issue", func(t *testing.T) {
		s := loggedInAt(domain.ScreenFeedback, domain.ScreenTrack)
		s.CurrentIssueID = "X"

		next := domain.GoBack(s)
		assert.Equal(t, domain.ScreenTrack, next.CurrentScreen)
		assert.Empty(t, next.CurrentIssueID)
	})
}

func TestGoBack_Fallback(t *testing.T) {
	tests := []struct {
		name     string
		state    domain.AppState
		expected domain.Screen
	}{
		{
			name:     "empty history logged out",
			state:    domain.AppState{CurrentScreen: domain.ScreenOnboarding, NavigationHistory: []domain.Screen{}},
			expected: domain.ScreenLogin,
		},
		{
			name:     "empty history logged in",
			state:    loggedInAt(domain.ScreenProfile),
			expected: domain.ScreenHome,
		},
		{
			name:     "self loop entry",
			state:    loggedInAt(domain.ScreenTrack, domain.ScreenHome, domain.ScreenTrack),
			expected: domain.ScreenHome,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.state.CurrentIssueID = "NM2024004"
			require.True(t, domain.IsFallback(tt.state))

			next := domain.GoBack(tt.state)
			assert.Equal(t, tt.expected, next.CurrentScreen)
			assert.Empty(t, next.NavigationHistory)
			assert.NotNil(t, next.NavigationHistory)
			assert.Empty(t, next.CurrentIssueID)
		})
	}
}

func TestLogin_RoutesByRole(t *testing.T) {
	tests := []struct {
		role     domain.Role
		wantRole domain.Role
		expected domain.Screen
	}{
		{domain.RoleCitizen, domain.RoleCitizen, domain.ScreenHome},
		{domain.RoleAdmin, domain.RoleAdmin, domain.ScreenAdmin},
		{domain.RoleSuperAdmin, domain.RoleSuperAdmin, domain.ScreenSuperAdmin},
		{"", domain.RoleCitizen, domain.ScreenHome},
		{"mayor", domain.RoleCitizen, domain.ScreenHome},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("role=%q", tt.role), func(t *testing.T) {
			s := domain.NewAppState()
			s.CurrentScreen = domain.ScreenLogin
			s.NavigationHistory = []domain.Screen{domain.ScreenOnboarding}
			s.CurrentIssueID = "kept"

			next := domain.Login(s, tt.role)
			assert.True(t, next.IsLoggedIn)
			assert.Equal(t, tt.wantRole, next.UserRole)
			assert.Equal(t, tt.expected, next.CurrentScreen)
			assert.Empty(t, next.NavigationHistory)
			assert.Equal(t, "kept", next.CurrentIssueID)
		})
	}
}

func TestSetters_ChangeOnlyTheirField(t *testing.T) {
	s := loggedInAt(domain.ScreenProfile, domain.ScreenHome)
	s.CurrentIssueID = "NM2024005"

	withRole := domain.SetUserRole(s, domain.RoleAdmin)
	expected := s.Snapshot()
	expected.UserRole = domain.RoleAdmin
	assert.Equal(t, expected, withRole)

	withLang := domain.SetLanguage(s, domain.LanguageHindi)
	expected = s.Snapshot()
	expected.Language = domain.LanguageHindi
	assert.Equal(t, expected, withLang)

	assert.True(t, domain.SetUserRole(s, "root").Equal(s))
	assert.True(t, domain.SetLanguage(s, "fr").Equal(s))
}

func TestEndToEnd_CitizenReportFlow(t *testing.T) {
	s := domain.NewAppState()

	s = domain.NavigateTo(s, domain.ScreenOnboarding, "")
	s = domain.NavigateTo(s, domain.ScreenLogin, "")
	s = domain.Login(s, domain.RoleCitizen)

	assert.Equal(t, domain.AppState{
		CurrentScreen:     domain.ScreenHome,
		UserRole:          domain.RoleCitizen,
		Language:          domain.LanguageEnglish,
		IsLoggedIn:        true,
		NavigationHistory: []domain.Screen{},
	}, s)

	s = domain.NavigateTo(s, domain.ScreenReport, "")
	s = domain.NavigateTo(s, domain.ScreenConfirmation, "NM2024007")
	assert.Equal(t, []domain.Screen{domain.ScreenHome, domain.ScreenReport}, s.NavigationHistory)
	assert.Equal(t, "NM2024007", s.CurrentIssueID)

	s = domain.GoBack(s)
	assert.Equal(t, domain.ScreenReport, s.CurrentScreen)
	assert.Equal(t, []domain.Screen{domain.ScreenHome}, s.NavigationHistory)
	assert.Empty(t, s.CurrentIssueID)
}
