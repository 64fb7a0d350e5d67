package cmd

import (
	"context"
	"path"
	"time"

	"github.com/oneconcern/odtools/pkg/core"
	"github.com/spf13/cobra"
)

var sessionAdd = &cobra.Command{
	Use:     "add",
	Short:   "Add a session to an acquisition date",
	Example: `% odtools session add --store /data/exp1 --subject subj-001 --date 2020-01-02 --session 1`,
	Run: func(cmd *cobra.Command, args []string) {
		defer cliUsage(time.Now(), "session add")
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

		date, err := entryAt(ctx, s, path.Join(odtoolsFlags.entry.subject, odtoolsFlags.entry.date))
		if err != nil {
			wrapFatalln("open date", err)
			return
		}
		_, err = core.AddSession(ctx, date, odtoolsFlags.entry.session,
			core.WithLogger(getLogger()),
			core.WithMetrics(odtoolsFlags.root.metrics.IsEnabled()),
		)
		if err != nil {
			wrapFatalln("add session", err)
			return
		}
	},
}

func init() {
	requireFlags(sessionAdd,
		addSubjectFlag(sessionAdd),
		addDateFlag(sessionAdd),
	)
	addSessionFlag(sessionAdd)
	sessionCmd.AddCommand(sessionAdd)
}
