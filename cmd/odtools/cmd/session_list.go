package cmd

import (
	"context"
	"path"
	"time"

	"github.com/oneconcern/odtools/pkg/core"
	"github.com/spf13/cobra"
)

var sessionList = &cobra.Command{
	Use:   "list",
	Short: "List sessions",
	Long: `List sessions. The scope narrows with --subject and --date:
without either, every session of the experiment is listed.`,
	Example: `% odtools session list --store /data/exp1 --subject subj-001 --date 2020-01-02
subj-001 , 2020-01-02 , session 1
subj-001 , 2020-01-02 , session 2`,
	Run: func(cmd *cobra.Command, args []string) {
		defer cliUsage(time.Now(), "session list")
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

		e, err := entryAt(ctx, s, path.Join(odtoolsFlags.entry.subject, odtoolsFlags.entry.date))
		if err != nil {
			wrapFatalln("open entry", err)
			return
		}
		sessions, err := core.ListSessions(ctx, e,
			core.WithMetrics(odtoolsFlags.root.metrics.IsEnabled()),
		)
		if err != nil {
			wrapFatalln("list sessions", err)
			return
		}
		t := lineTemplate(odtoolsFlags, sessionLineTemplateString)
		for _, toPin := range sessions {
			session := toPin
			if err := printTemplate(t, session); err != nil {
				wrapFatalln("executing template", err)
				return
			}
		}
	},
}

func init() {
	addSubjectFlag(sessionList)
	addDateFlag(sessionList)
	sessionCmd.AddCommand(sessionList)
}
