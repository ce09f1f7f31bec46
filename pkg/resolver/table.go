package resolver

import (
	"sort"

	"github.com/nagarniyantran/civicnav/pkg/domain"
)

// EventName identifies an outbound event raised by a screen view.
type EventName string

const (
	EventComplete       EventName = "complete"
	EventLanguageChange EventName = "language_change"
	EventLogin          EventName = "login"
	EventNavigate       EventName = "navigate"
	EventSubmit         EventName = "submit"
	EventBack           EventName = "back"
	EventTrack          EventName = "track"
	EventFeedback       EventName = "feedback"
)

// Call names the transition an event invokes.
type Call string

const (
	CallNavigateTo  Call = "navigateTo"
	CallGoBack      Call = "goBack"
	CallLogin       Call = "login"
	CallSetLanguage Call = "setLanguage"
)

// ParamKind names the inbound parameter a view receives.
type ParamKind string

const (
	ParamNone     ParamKind = ""
	ParamLanguage ParamKind = "language"
	ParamIssueID  ParamKind = "issue_id"
)

// eventSpec describes one outbound event of a view.
type eventSpec struct {
	Name EventName
	Call Call
	// Target is the fixed destination of a CallNavigateTo.
	// Empty means the destination comes from the event payload.
	Target domain.Screen
	// ForwardIssue passes the payload issue ID to NavigateTo.
	ForwardIssue bool
}

type binding struct {
	Inbound ParamKind
	Events  []eventSpec
}

var (
	onComplete = func(target domain.Screen) eventSpec {
		return eventSpec{Name: EventComplete, Call: CallNavigateTo, Target: target}
	}
	onNavigate       = eventSpec{Name: EventNavigate, Call: CallNavigateTo}
	onBack           = eventSpec{Name: EventBack, Call: CallGoBack}
	onLanguageChange = eventSpec{Name: EventLanguageChange, Call: CallSetLanguage}
)

// unrecognized is the binding used for screens missing from the table.
var unrecognized = binding{Events: []eventSpec{onComplete(domain.ScreenOnboarding)}}

// table is the single source of truth for the screen to view mapping.
var table = map[domain.Screen]binding{
	domain.ScreenSplash: unrecognized,
	domain.ScreenOnboarding: {
		Events: []eventSpec{onComplete(domain.ScreenLogin)},
	},
	domain.ScreenLogin: {
		Inbound: ParamLanguage,
		Events: []eventSpec{
			onLanguageChange,
			{Name: EventLogin, Call: CallLogin},
		},
	},
	domain.ScreenHome: {
		Inbound: ParamLanguage,
		Events:  []eventSpec{onNavigate},
	},
	domain.ScreenReport: {
		Inbound: ParamLanguage,
		Events: []eventSpec{
			{Name: EventSubmit, Call: CallNavigateTo, Target: domain.ScreenConfirmation, ForwardIssue: true},
			onBack,
		},
	},
	domain.ScreenConfirmation: {
		Inbound: ParamIssueID,
		Events: []eventSpec{
			onBack,
			{Name: EventTrack, Call: CallNavigateTo, Target: domain.ScreenTrack},
		},
	},
	domain.ScreenTrack: {
		Inbound: ParamLanguage,
		Events: []eventSpec{
			onNavigate,
			{Name: EventFeedback, Call: CallNavigateTo, Target: domain.ScreenFeedback, ForwardIssue: true},
		},
	},
	domain.ScreenAdmin: {
		Inbound: ParamLanguage,
		Events:  []eventSpec{onNavigate},
	},
	domain.ScreenSuperAdmin: {
		Inbound: ParamLanguage,
		Events:  []eventSpec{onNavigate},
	},
	domain.ScreenFeedback: {
		Inbound: ParamIssueID,
		Events: []eventSpec{
			{Name: EventSubmit, Call: CallNavigateTo, Target: domain.ScreenTrack},
			onBack,
		},
	},
	domain.ScreenProfile: {
		Inbound: ParamLanguage,
		Events: []eventSpec{
			onLanguageChange,
			onBack,
		},
	},
}

// lookup returns the binding for screen and the screen actually rendered.
func lookup(screen domain.Screen) (binding, domain.Screen) {
	if b, ok := table[screen]; ok {
		return b, screen
	}
	return unrecognized, domain.ScreenSplash
}

// Route is one outbound edge of the screen table, exported for introspection.
type Route struct {
	Screen  domain.Screen `json:"screen"`
	Inbound ParamKind     `json:"inbound,omitempty"`
	Event   EventName     `json:"event"`
	Call    Call          `json:"call"`
	// Target is empty when the destination is chosen by the payload
	// (navigate) or by the history (goBack).
	Target       domain.Screen `json:"target,omitempty"`
	ForwardIssue bool          `json:"forward_issue,omitempty"`
}

// Routes lists every edge of the table in screen declaration order.
func Routes() []Route {
	var routes []Route
	for _, screen := range domain.Screens() {
		b := table[screen]
		for _, ev := range b.Events {
			routes = append(routes, Route{
				Screen:       screen,
				Inbound:      b.Inbound,
				Event:        ev.Name,
				Call:         ev.Call,
				Target:       ev.Target,
				ForwardIssue: ev.ForwardIssue,
			})
		}
	}
	return routes
}

// Events returns the event names a screen accepts, sorted.
func Events(screen domain.Screen) []EventName {
	b, _ := lookup(screen)
	names := make([]EventName, 0, len(b.Events))
	for _, ev := range b.Events {
		names = append(names, ev.Name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
