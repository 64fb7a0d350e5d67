package cmd

import (
	"context"
	"time"

	"github.com/oneconcern/odtools/pkg/core"
	"github.com/spf13/cobra"
)

var dateList = &cobra.Command{
	Use:   "list",
	Short: "List acquisition dates",
	Long: `List acquisition dates. With --subject, lists the dates of that
subject; otherwise lists the dates of every subject.`,
	Example: `% odtools date list --store /data/exp1 --subject subj-001
subj-001 , 2020-01-02
subj-001 , 2020-01-05`,
	Run: func(cmd *cobra.Command, args []string) {
		defer cliUsage(time.Now(), "date list")
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

		e, err := entryAt(ctx, s, odtoolsFlags.entry.subject)
		if err != nil {
			wrapFatalln("open entry", err)
			return
		}
		dates, err := core.ListDates(ctx, e,
			core.WithMetrics(odtoolsFlags.root.metrics.IsEnabled()),
		)
		if err != nil {
			wrapFatalln("list dates", err)
			return
		}
		t := lineTemplate(odtoolsFlags, dateLineTemplateString)
		for _, toPin := range dates {
			date := toPin
			if err := printTemplate(t, date); err != nil {
				wrapFatalln("executing template", err)
				return
			}
		}
	},
}

func init() {
	addSubjectFlag(dateList)
	dateCmd.AddCommand(dateList)
}
