package validator

import (
	"fmt"
	"strings"

	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/resolver"
)

// ValidateRoutes checks the screen table for broken links and unreachable screens,
// crawling from the splash screen.
func ValidateRoutes(routes []resolver.Route) error {
	var errs []string

	edges := make(map[domain.Screen][]domain.Screen)
	declared := make(map[domain.Screen]bool)
	seen := make(map[string]bool)
	anywhere := false

	for _, r := range routes {
		if !r.Screen.Valid() {
			errs = append(errs, fmt.Sprintf("Unknown screen: '%s'", r.Screen))
			continue
		}
		declared[r.Screen] = true

		key := string(r.Screen) + "/" + string(r.Event)
		if seen[key] {
			errs = append(errs, fmt.Sprintf("Duplicate event '%s' on '%s'", r.Event, r.Screen))
		}
		seen[key] = true

		switch r.Call {
		case resolver.CallLogin:
			for _, role := range []domain.Role{domain.RoleCitizen, domain.RoleAdmin, domain.RoleSuperAdmin} {
				edges[r.Screen] = append(edges[r.Screen], role.EntryScreen())
			}
		case resolver.CallNavigateTo:
			if r.Target == "" {
				// Payload-chosen destination
				anywhere = true
				continue
			}
			if !r.Target.Valid() {
				errs = append(errs, fmt.Sprintf("Broken link: '%s' --%s--> '%s'", r.Screen, r.Event, r.Target))
				continue
			}
			edges[r.Screen] = append(edges[r.Screen], r.Target)
		case resolver.CallGoBack, resolver.CallSetLanguage:
			// Only revisits screens already reached
		default:
			errs = append(errs, fmt.Sprintf("Unknown call '%s' for '%s' on '%s'", r.Call, r.Event, r.Screen))
		}
	}

	// Crawler
	if !anywhere {
		visited := map[domain.Screen]bool{}
		queue := []domain.Screen{domain.ScreenSplash}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			if visited[current] {
				continue
			}
			visited[current] = true
			for _, next := range edges[current] {
				if !visited[next] {
					queue = append(queue, next)
				}
			}
		}
		for _, screen := range domain.Screens() {
			if declared[screen] && !visited[screen] {
				errs = append(errs, fmt.Sprintf("Unreachable screen: '%s'", screen))
			}
		}
	}

	for _, screen := range domain.Screens() {
		if !declared[screen] {
			errs = append(errs, fmt.Sprintf("Screen without events: '%s'", screen))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errs), strings.Join(errs, "\n- "))
	}
	return nil
}

// ValidateState checks a state read from outside the process against the
// invariants the transitions maintain. It returns an error wrapping
// domain.ErrInvalidState.
func ValidateState(s domain.AppState) error {
	var problems []string

	if !s.CurrentScreen.Valid() {
		problems = append(problems, fmt.Sprintf("unknown screen %q", s.CurrentScreen))
	}
	if !s.UserRole.Valid() {
		problems = append(problems, fmt.Sprintf("unknown role %q", s.UserRole))
	}
	if !s.Language.Valid() {
		problems = append(problems, fmt.Sprintf("unsupported language %q", s.Language))
	}
	if n := len(s.NavigationHistory); n > domain.HistoryLimit {
		problems = append(problems, fmt.Sprintf("history holds %d entries (limit %d)", n, domain.HistoryLimit))
	}
	for i, screen := range s.NavigationHistory {
		switch {
		case screen == domain.ScreenSplash:
			problems = append(problems, fmt.Sprintf("history[%d] is the splash screen", i))
		case !screen.Valid():
			problems = append(problems, fmt.Sprintf("history[%d] is unknown screen %q", i, screen))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidState, strings.Join(problems, "; "))
	}
	return nil
}
