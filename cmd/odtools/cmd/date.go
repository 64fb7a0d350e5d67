package cmd

import (
	"github.com/spf13/cobra"
)

// dateCmd represents the acquisition date related commands
var dateCmd = &cobra.Command{
	Use:   "date",
	Short: "Commands to manage acquisition dates",
	Long: `Commands to manage the acquisition dates of a subject.

An acquisition date groups the sessions recorded on one day,
conventionally named YYYY-MM-DD.`,
}

func init() {
	rootCmd.AddCommand(dateCmd)
}
