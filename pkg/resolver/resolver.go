package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/ports"
)

// ErrUnknownEvent is returned when a view is asked to raise an event it does not declare.
var ErrUnknownEvent = errors.New("unknown event for screen")

// Input is the slice of AppState the resolver depends on.
type Input struct {
	CurrentScreen  domain.Screen
	Language       domain.Language
	CurrentIssueID string
}

// InputFrom extracts the resolver input from a full state.
func InputFrom(s domain.AppState) Input {
	return Input{
		CurrentScreen:  s.CurrentScreen,
		Language:       s.Language,
		CurrentIssueID: s.CurrentIssueID,
	}
}

// Params are the inbound parameters of a view. Fields a screen does not take are empty.
type Params struct {
	Language domain.Language `json:"language,omitempty"`
	IssueID  string          `json:"issue_id,omitempty"`
}

// Payload carries the arguments of an outbound event.
// Only the fields relevant to the event are read.
type Payload struct {
	Screen   domain.Screen   `json:"screen,omitempty" mapstructure:"screen"`
	IssueID  string          `json:"issue_id,omitempty" mapstructure:"issue_id"`
	Role     domain.Role     `json:"role,omitempty" mapstructure:"role"`
	Language domain.Language `json:"language,omitempty" mapstructure:"language"`
}

// Handler runs the transition bound to an event and returns the resulting state.
type Handler func(ctx context.Context, p Payload) domain.AppState

// View is the descriptor of the screen to activate.
type View struct {
	Screen   domain.Screen
	Params   Params
	handlers map[EventName]Handler
}

// Resolve computes the view for in and wires its events to t.
func Resolve(in Input, t ports.Transitions) View {
	b, screen := lookup(in.CurrentScreen)

	view := View{
		Screen:   screen,
		Params:   params(b.Inbound, in),
		handlers: make(map[EventName]Handler, len(b.Events)),
	}
	for _, ev := range b.Events {
		view.handlers[ev.Name] = bind(ev, t)
	}
	return view
}

// Describe resolves the view for in without binding its events.
// It suits read-only callers; Trigger on the result always fails.
func Describe(in Input) View {
	b, screen := lookup(in.CurrentScreen)
	return View{Screen: screen, Params: params(b.Inbound, in)}
}

// Events returns the event names the view accepts, sorted.
func (v View) Events() []EventName {
	return Events(v.Screen)
}

// Accepts reports whether the view declares event.
func (v View) Accepts(event EventName) bool {
	_, ok := v.handlers[event]
	return ok
}

// Trigger raises event on the view.
func (v View) Trigger(ctx context.Context, event EventName, p Payload) (domain.AppState, error) {
	h, ok := v.handlers[event]
	if !ok {
		return domain.AppState{}, fmt.Errorf("%w: %q on %s", ErrUnknownEvent, event, v.Screen)
	}
	return h(ctx, p), nil
}

func params(kind ParamKind, in Input) Params {
	switch kind {
	case ParamLanguage:
		return Params{Language: in.Language}
	case ParamIssueID:
		issue := in.CurrentIssueID
		if issue == "" {
			issue = domain.PlaceholderIssueID
		}
		return Params{IssueID: issue}
	}
	return Params{}
}

func bind(ev eventSpec, t ports.Transitions) Handler {
	switch ev.Call {
	case CallGoBack:
		return func(ctx context.Context, _ Payload) domain.AppState {
			return t.GoBack(ctx)
		}
	case CallLogin:
		return func(ctx context.Context, p Payload) domain.AppState {
			return t.Login(ctx, p.Role)
		}
	case CallSetLanguage:
		return func(ctx context.Context, p Payload) domain.AppState {
			return t.SetLanguage(ctx, p.Language)
		}
	}

	return func(ctx context.Context, p Payload) domain.AppState {
		target := ev.Target
		if target == "" {
			target = p.Screen
		}
		issue := ""
		if ev.ForwardIssue {
			issue = p.IssueID
		}
		return t.NavigateTo(ctx, target, issue)
	}
}

// Descriptor is the serializable form of a View.
type Descriptor struct {
	Screen domain.Screen `json:"screen"`
	Params Params        `json:"params"`
	Events []EventName   `json:"events"`
}

// Descriptor returns the serializable form of v.
func (v View) Descriptor() Descriptor {
	return Descriptor{
		Screen: v.Screen,
		Params: v.Params,
		Events: v.Events(),
	}
}
