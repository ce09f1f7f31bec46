package domain

// NavigateTo moves forward to screen and sets the issue in focus.
//
// Navigating to the current screen, or to an unknown one, returns s unchanged.
// The screen being left is pushed onto the history unless it is the splash
// screen, keeping at most HistoryLimit entries.
func NavigateTo(s AppState, screen Screen, issueID string) AppState {
	if screen == s.CurrentScreen || !screen.Valid() {
		return s
	}

	next := s.Snapshot()
	if s.CurrentScreen != ScreenSplash {
		next.NavigationHistory = push(s.NavigationHistory, s.CurrentScreen)
	}
	next.CurrentScreen = screen
	next.CurrentIssueID = issueID
	return next
}

// GoBack restores the most recent history entry.
//
// The issue in focus survives only when the restored screen is the feedback
// screen. With an empty history, or when the popped entry equals the current
// screen, the session falls back to home (logged in) or login, with the
// history reset.
func GoBack(s AppState) AppState {
	next := s.Snapshot()

	previous, ok := s.Previous()
	if ok && previous != s.CurrentScreen {
		next.NavigationHistory = next.NavigationHistory[:len(next.NavigationHistory)-1]
		next.CurrentScreen = previous
		if previous != ScreenFeedback {
			next.CurrentIssueID = ""
		}
		return next
	}

	next.CurrentScreen = FallbackScreen(s)
	next.NavigationHistory = []Screen{}
	next.CurrentIssueID = ""
	return next
}

// IsFallback reports whether GoBack on s takes the fallback path.
func IsFallback(s AppState) bool {
	previous, ok := s.Previous()
	return !ok || previous == s.CurrentScreen
}

// FallbackScreen is where GoBack lands when there is nothing to go back to.
func FallbackScreen(s AppState) Screen {
	if s.IsLoggedIn {
		return ScreenHome
	}
	return ScreenLogin
}

// Login authenticates the session as role and routes to the role's entry screen.
// An empty or unknown role logs in as a citizen. The history is always cleared;
// the issue in focus is left untouched.
func Login(s AppState, role Role) AppState {
	if !role.Valid() {
		role = RoleCitizen
	}

	next := s.Snapshot()
	next.IsLoggedIn = true
	next.UserRole = role
	next.CurrentScreen = role.EntryScreen()
	next.NavigationHistory = []Screen{}
	return next
}

// SetUserRole changes the role only. Unknown roles are ignored.
func SetUserRole(s AppState, role Role) AppState {
	if !role.Valid() {
		return s
	}
	next := s.Snapshot()
	next.UserRole = role
	return next
}

// SetLanguage changes the locale only. Unsupported languages are ignored.
func SetLanguage(s AppState, language Language) AppState {
	if !language.Valid() {
		return s
	}
	next := s.Snapshot()
	next.Language = language
	return next
}

// push appends screen to history as a sliding window of HistoryLimit entries.
func push(history []Screen, screen Screen) []Screen {
	keep := history
	if len(keep) > HistoryLimit-1 {
		keep = keep[len(keep)-(HistoryLimit-1):]
	}
	out := make([]Screen, 0, len(keep)+1)
	out = append(out, keep...)
	return append(out, screen)
}
