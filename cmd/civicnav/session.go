package main

import (
	"fmt"
	"os"

	"github.com/nagarniyantran/civicnav/internal/cli"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage persistent sessions",
	Long:  `List, inspect, and remove sessions held by the configured store.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all active sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer deps.stack.Close()
		return cli.ListSessions(cmd.Context(), deps.stack.NewManager(deps.logger), os.Stdout)
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect the state and view of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer deps.stack.Close()
		return cli.InspectSession(cmd.Context(), deps.stack.NewManager(deps.logger), args[0], os.Stdout)
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer deps.stack.Close()

		manager := deps.stack.NewManager(deps.logger)
		failed := 0
		for _, sessionID := range args {
			if err := cli.RemoveSession(cmd.Context(), manager, sessionID, os.Stdout); err != nil {
				fmt.Fprintln(os.Stderr, err)
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d sessions could not be removed", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)
}
