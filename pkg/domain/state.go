package domain

// AppState represents the current snapshot of a navigation session.
type AppState struct {
	// SessionID identifies the session in stores and transports.
	// Transitions never read or change it.
	SessionID string `json:"session_id,omitempty"`

	// CurrentScreen is the active view.
	CurrentScreen Screen `json:"current_screen"`

	UserRole   Role     `json:"user_role"`
	Language   Language `json:"language"`
	IsLoggedIn bool     `json:"is_logged_in"`

	// CurrentIssueID is the issue in focus. Empty means no issue context applies.
	CurrentIssueID string `json:"current_issue_id,omitempty"`

	// NavigationHistory is the back-stack, most recent last.
	// It never holds more than HistoryLimit entries and never holds ScreenSplash.
	NavigationHistory []Screen `json:"navigation_history"`
}

// NewAppState creates the start-of-session state.
func NewAppState() AppState {
	return AppState{
		CurrentScreen:     ScreenSplash,
		UserRole:          RoleCitizen,
		Language:          LanguageEnglish,
		NavigationHistory: []Screen{},
	}
}

// Snapshot returns a copy of the state that shares no memory with s.
func (s AppState) Snapshot() AppState {
	out := s
	out.NavigationHistory = make([]Screen, len(s.NavigationHistory))
	copy(out.NavigationHistory, s.NavigationHistory)
	return out
}

// Previous returns the top of the back-stack without popping it.
func (s AppState) Previous() (Screen, bool) {
	if len(s.NavigationHistory) == 0 {
		return "", false
	}
	return s.NavigationHistory[len(s.NavigationHistory)-1], true
}

// Equal reports whether two states hold the same values.
// A nil and an empty history compare equal.
func (s AppState) Equal(o AppState) bool {
	if s.SessionID != o.SessionID ||
		s.CurrentScreen != o.CurrentScreen ||
		s.UserRole != o.UserRole ||
		s.Language != o.Language ||
		s.IsLoggedIn != o.IsLoggedIn ||
		s.CurrentIssueID != o.CurrentIssueID ||
		len(s.NavigationHistory) != len(o.NavigationHistory) {
		return false
	}
	for i := range s.NavigationHistory {
		if s.NavigationHistory[i] != o.NavigationHistory[i] {
			return false
		}
	}
	return true
}
