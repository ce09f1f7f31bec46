/*
Package resolver maps the navigation state to the screen view to display.

The mapping is a single lookup table keyed by domain.Screen. Each entry names the inbound
parameters the view receives and the outbound events it can raise, together with the
transition each event invokes. Resolve binds those events to a ports.Transitions
implementation so the caller only has to forward user interactions:

	view := resolver.Resolve(resolver.InputFrom(nav.State()), nav)
	state, err := view.Trigger(ctx, resolver.EventSubmit, resolver.Payload{IssueID: "NM2024007"})

Unrecognized screens resolve to the splash view.
*/
package resolver
