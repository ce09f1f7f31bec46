package domain

const (
	// HistoryLimit is the capacity of the navigation back-stack.
	HistoryLimit = 10

	// PlaceholderIssueID is shown on screens that require an issue reference
	// when none is in focus.
	PlaceholderIssueID = "NM2024001"
)
