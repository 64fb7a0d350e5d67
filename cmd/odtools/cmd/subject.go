package cmd

import (
	"github.com/spf13/cobra"
)

// subjectCmd represents the subject related commands
var subjectCmd = &cobra.Command{
	Use:   "subject",
	Short: "Commands to manage subjects",
	Long: `Commands to manage the subjects of an experiment.

A subject is the topmost level of the data hierarchy: every acquisition
date, session and dataset hangs below a subject.`,
}

func init() {
	rootCmd.AddCommand(subjectCmd)
}
