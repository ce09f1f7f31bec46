package ports

import (
	"context"

	"github.com/nagarniyantran/civicnav/pkg/domain"
)

// Transitions is the set of navigation operations a screen view can invoke.
// Every call is total: it never fails and returns the resulting state.
type Transitions interface {
	NavigateTo(ctx context.Context, screen domain.Screen, issueID string) domain.AppState
	GoBack(ctx context.Context) domain.AppState
	Login(ctx context.Context, role domain.Role) domain.AppState
	SetUserRole(ctx context.Context, role domain.Role) domain.AppState
	SetLanguage(ctx context.Context, language domain.Language) domain.AppState
}
