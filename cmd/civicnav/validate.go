package main

import (
	"errors"
	"fmt"

	"github.com/nagarniyantran/civicnav/internal/validator"
	"github.com/nagarniyantran/civicnav/pkg/resolver"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the screen table and stored sessions for consistency",
	Long: `Crawls the screen table from the splash screen and reports broken links and
unreachable screens. With --sessions, every stored session is loaded and checked
against the navigation invariants as well.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validator.ValidateRoutes(resolver.Routes()); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Screen table is valid! ✅")

		checkSessions, _ := cmd.Flags().GetBool("sessions")
		if !checkSessions {
			return nil
		}

		deps, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer deps.stack.Close()

		ids, err := deps.stack.Store.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		var errs []error
		for _, id := range ids {
			state, err := deps.stack.Store.Load(cmd.Context(), id)
			if err == nil {
				err = validator.ValidateState(state)
			}
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", id, err))
			}
		}
		if len(errs) > 0 {
			return fmt.Errorf("%d of %d sessions are invalid:\n%w", len(errs), len(ids), errors.Join(errs...))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d sessions are valid! ✅\n", len(ids))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("sessions", false, "Also validate every stored session")
}
