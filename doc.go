/*
Package civicnav is the screen-navigation and session-state controller of the
NagarNiyantran civic-complaint mobile application.

It tracks which screen is active, a bounded back-stack, the logged-in role (citizen,
admin or super-admin), the active locale and the issue currently in focus. Screen views
never mutate that state directly: they raise events, the controller applies the bound
transition, and the next view is resolved from the new state.

# Concept

The core is split in two:

  - The navigation store (pkg/domain, pkg/navigator) owns the AppState and its total,
    pure transitions: NavigateTo, GoBack, Login, SetUserRole and SetLanguage.
  - The screen resolver (pkg/resolver) maps the state to the view to activate, its
    inbound parameters and the events it can raise.

Persistence, HTTP, MCP and the CLI are adapters around that core.

# Usage

	ctrl := civicnav.New()
	ctx := context.Background()

	view := ctrl.View() // splash
	view, err := ctrl.Dispatch(ctx, resolver.EventComplete, resolver.Payload{})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(view.Screen) // onboarding
*/
package civicnav
