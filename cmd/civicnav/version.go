package main

import (
	"fmt"
	"strings"

	"github.com/nagarniyantran/civicnav"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of civicnav",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "civicnav version %s\n", strings.TrimSpace(civicnav.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
