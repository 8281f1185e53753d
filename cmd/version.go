package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Agendas",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Agenda Aggregator v%s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
