/*
Package runner implements the interactive session loop used by the play command.

It renders the active screen view through a pluggable IOHandler, reads one
command per line, and raises it as an event on the view. Commands have the form

	event [key=value ...]

for example "navigate screen=report" or "login role=admin". The built-in commands
help, state and exit are handled by the loop itself.

# Usage

	r := runner.New(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
		runner.WithStore(store),
		runner.WithSessionID("kiosk-1"),
	)

	if err := r.Run(ctx, civicnav.New()); err != nil {
		log.Fatal(err)
	}
*/
package runner
