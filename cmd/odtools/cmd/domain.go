package cmd

import (
	"github.com/spf13/cobra"
)

// domainCmd represents the domain related commands
var domainCmd = &cobra.Command{
	Use:   "domain",
	Short: "Commands to manage domains",
	Long: `Commands to manage domains under a session.

A domain groups the data of one modality or analysis, e.g. "ephys" or
"behavior". Domains nest, and numbered runs are domains named by their
number.`,
}

func init() {
	rootCmd.AddCommand(domainCmd)
}
