/*
Package navigator owns a single navigation session.

A Navigator holds one domain.AppState behind a single update entry point. Every
transition is applied atomically, observers receive each changed state through
Subscribe, and lifecycle hooks are fired for auditing and metrics.

	nav := navigator.New(navigator.WithLogger(logger))
	states, cancel := nav.Subscribe()
	defer cancel()

	nav.NavigateTo(ctx, domain.ScreenOnboarding, "")
	<-states // onboarding
*/
package navigator
