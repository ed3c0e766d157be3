// Package cmd provides the command-line interface for stats.
// It defines the Cobra command structure, flag handling, and command execution
// for collecting GitHub profile statistics.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set by the main package before Execute is called.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "stats",
	Short: "Gather GitHub profile statistics for an account",
	Long: `stats collects and reports statistics about a GitHub account:
repositories, languages, contribution streaks, and activity metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		// fallback message, collection logic is in a subcommand
		fmt.Println("Use `stats run` to start collecting statistics.")
	},
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
