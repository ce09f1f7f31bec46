package main

import (
	"os"

	"github.com/nagarniyantran/civicnav/internal/cli"
	"github.com/nagarniyantran/civicnav/pkg/ports"
	"github.com/spf13/cobra"
)

var reportsCmd = &cobra.Command{
	Use:   "reports [collection]",
	Short: "List backend records",
	Long: `Fetches the records of a backend collection ("reports" by default) from the
seed configured with backend_seed. Filters are exact matches, e.g. --filter status=open.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer deps.stack.Close()

		collection := "reports"
		if len(args) > 0 {
			collection = args[0]
		}

		raw, _ := cmd.Flags().GetStringToString("filter")
		filter := make(ports.Filter, len(raw))
		for k, v := range raw {
			filter[k] = v
		}

		return cli.ListRecords(cmd.Context(), deps.stack.Backend, collection, filter, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(reportsCmd)
	reportsCmd.Flags().StringToString("filter", nil, "Equality filters as key=value pairs")
}
