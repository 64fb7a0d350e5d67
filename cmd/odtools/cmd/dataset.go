package cmd

import (
	"github.com/spf13/cobra"
)

// datasetCmd represents the dataset related commands
var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Commands to manage datasets",
	Long: `Commands to manage datasets attached to a session or domain.

A dataset is an opaque payload with descriptive attributes: a definition,
an optional physical unit, and a recorded content fingerprint and size.`,
}

func init() {
	rootCmd.AddCommand(datasetCmd)
}
