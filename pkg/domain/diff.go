package domain

// StateDiff represents the changes between two states.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	CurrentScreen *Screen   `json:"current_screen,omitempty"`
	UserRole      *Role     `json:"user_role,omitempty"`
	Language      *Language `json:"language,omitempty"`
	IsLoggedIn    *bool     `json:"is_logged_in,omitempty"`

	// CurrentIssueID is set when the issue in focus changed.
	// An empty string means the issue was cleared.
	CurrentIssueID *string `json:"current_issue_id,omitempty"`

	// NavigationHistory carries the whole back-stack when it changed.
	// The stack is pushed and popped, so appended-only deltas do not apply.
	NavigationHistory []Screen `json:"navigation_history,omitempty"`
	HistoryChanged    bool     `json:"history_changed,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
// It returns nil when nothing changed.
func Diff(oldState, newState *AppState) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{SessionID: newState.SessionID}

	if oldState == nil || oldState.CurrentScreen != newState.CurrentScreen {
		diff.CurrentScreen = ptr(newState.CurrentScreen)
	}
	if oldState == nil || oldState.UserRole != newState.UserRole {
		diff.UserRole = ptr(newState.UserRole)
	}
	if oldState == nil || oldState.Language != newState.Language {
		diff.Language = ptr(newState.Language)
	}
	if oldState == nil || oldState.IsLoggedIn != newState.IsLoggedIn {
		diff.IsLoggedIn = ptr(newState.IsLoggedIn)
	}
	if oldState == nil {
		if newState.CurrentIssueID != "" {
			diff.CurrentIssueID = ptr(newState.CurrentIssueID)
		}
	} else if oldState.CurrentIssueID != newState.CurrentIssueID {
		diff.CurrentIssueID = ptr(newState.CurrentIssueID)
	}
	if oldState == nil || !sameHistory(oldState.NavigationHistory, newState.NavigationHistory) {
		diff.NavigationHistory = append([]Screen{}, newState.NavigationHistory...)
		diff.HistoryChanged = true
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.CurrentScreen == nil &&
		d.UserRole == nil &&
		d.Language == nil &&
		d.IsLoggedIn == nil &&
		d.CurrentIssueID == nil &&
		!d.HistoryChanged
}

// Has reports whether the diff touches the named field group.
// Known groups: "screen", "role", "language", "auth", "issue", "history".
func (d *StateDiff) Has(field string) bool {
	switch field {
	case "screen":
		return d.CurrentScreen != nil
	case "role":
		return d.UserRole != nil
	case "language":
		return d.Language != nil
	case "auth":
		return d.IsLoggedIn != nil
	case "issue":
		return d.CurrentIssueID != nil
	case "history":
		return d.HistoryChanged
	}
	return false
}

func sameHistory(a, b []Screen) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func ptr[T any](v T) *T {
	return &v
}
