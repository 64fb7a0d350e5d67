package cmd

import (
	"context"
	"time"

	"github.com/oneconcern/odtools/pkg/core"
	"github.com/spf13/cobra"
)

var subjectAdd = &cobra.Command{
	Use:   "add",
	Short: "Add a subject",
	Long: "Add a subject to the experiment. Subject names are built from " +
		"unicode letters, digits, hyphens, underscores and dots. Example: subj-001",
	Run: func(cmd *cobra.Command, args []string) {
		defer cliUsage(time.Now(), "subject add")
		initMetrics()
		ctx := context.Background()

		s, err := srcStore()
		if err != nil {
			wrapFatalln("open store", err)
			return
		}
		defer func() {
			_ = s.Close()
		}()

		root, err := s.Root(ctx)
		if err != nil {
			wrapFatalln("open store root", err)
			return
		}
		_, err = core.AddSubject(ctx, root, odtoolsFlags.entry.subject,
			core.WithLogger(getLogger()),
			core.WithMetrics(odtoolsFlags.root.metrics.IsEnabled()),
		)
		if err != nil {
			wrapFatalln("add subject", err)
			return
		}
	},
}

func init() {
	requireFlags(subjectAdd, addSubjectFlag(subjectAdd))
	subjectCmd.AddCommand(subjectAdd)
}
