package main

import (
	"os"

	"github.com/nagarniyantran/civicnav/internal/cli"
	"github.com/nagarniyantran/civicnav/internal/presentation/tui"
	"github.com/nagarniyantran/civicnav/pkg/locale"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Walk through the app screens interactively",
	Long: `Renders the active screen and reads one event per line, e.g.

  complete
  login role=admin
  navigate screen=report
  back

Type 'help' for the events of the current screen, 'state' for the raw state and 'exit' to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer deps.stack.Close()

		sessionID, _ := cmd.Flags().GetString("session")
		fresh, _ := cmd.Flags().GetBool("fresh")
		jsonMode, _ := cmd.Flags().GetBool("json")
		plain, _ := cmd.Flags().GetBool("plain")
		pref, _ := cmd.Flags().GetString("language")
		if pref == "" {
			pref = deps.cfg.DefaultLanguage
		}

		opts := cli.PlayOptions{
			SessionID: sessionID,
			Fresh:     fresh,
			Language:  locale.Match(pref),
			JSON:      jsonMode,
			Quiet:     !term.IsTerminal(int(os.Stdout.Fd())),
			In:        os.Stdin,
			Out:       os.Stdout,
		}
		// Glamour only makes sense on a real terminal.
		if !jsonMode && !plain && !opts.Quiet {
			opts.Renderer = tui.NewRenderer()
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		return cli.Play(sigCtx, deps.stack, opts, deps.logger)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("session", "s", "", "Persist the session under this ID (empty plays an ephemeral session)")
	playCmd.Flags().Bool("fresh", false, "Discard the stored session before starting")
	playCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	playCmd.Flags().Bool("plain", false, "Print plain markdown instead of styled output")
	playCmd.Flags().StringP("language", "l", "", "Language of a new session (BCP 47, e.g. hi-IN)")
}
