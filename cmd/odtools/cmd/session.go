package cmd

import (
	"github.com/spf13/cobra"
)

// sessionCmd represents the session related commands
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Commands to manage sessions",
	Long: `Commands to manage the numbered sessions of an acquisition date.

A session groups the domains, runs and datasets acquired in one sitting.`,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}
