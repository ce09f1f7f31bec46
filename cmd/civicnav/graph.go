package main

import (
	"fmt"

	"github.com/nagarniyantran/civicnav/internal/presentation/graph"
	"github.com/nagarniyantran/civicnav/pkg/resolver"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the screen graph visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the screens and the events that connect them.
With --session, the visited and current screens of that session are highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")

		var overlay *graph.GraphOverlay
		if sessionID != "" {
			deps, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer deps.stack.Close()

			state, err := deps.stack.NewManager(deps.logger).Load(cmd.Context(), sessionID)
			if err != nil {
				return fmt.Errorf("failed to load session %q: %w", sessionID, err)
			}
			overlay = graph.OverlayFor(state)
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(resolver.Routes(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("session", "s", "", "Highlight the path of a stored session")
}
