package cmd

import (
	"context"
	"time"

	"github.com/oneconcern/odtools/pkg/core"
	"github.com/spf13/cobra"
)

var dateAdd = &cobra.Command{
	Use:   "add",
	Short: "Add an acquisition date to a subject",
	Example: `% odtools date add --store /data/exp1 --subject subj-001 --date 2020-01-02`,
	Run: func(cmd *cobra.Command, args []string) {
		defer cliUsage(time.Now(), "date add")
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

		subject, err := entryAt(ctx, s, odtoolsFlags.entry.subject)
		if err != nil {
			wrapFatalln("open subject", err)
			return
		}
		_, err = core.AddDate(ctx, subject, odtoolsFlags.entry.date,
			core.WithLogger(getLogger()),
			core.WithMetrics(odtoolsFlags.root.metrics.IsEnabled()),
		)
		if err != nil {
			wrapFatalln("add date", err)
			return
		}
	},
}

func init() {
	requireFlags(dateAdd,
		addSubjectFlag(dateAdd),
		addDateFlag(dateAdd),
	)
	dateCmd.AddCommand(dateAdd)
}
