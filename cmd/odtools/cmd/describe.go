package cmd

import (
	"context"
	"time"

	"github.com/oneconcern/odtools/pkg/core"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Describe an entry, or set the experiment description",
	Long: `Describe an entry of the store: its level in the hierarchy, its
positioning metadata and the counts of its children and datasets.

With --message, sets the description of the experiment on the store root.`,
	Example: `% odtools describe --store /data/exp1 --message "maze navigation study"
% odtools describe --store /data/exp1 --of subj-1/2020-01-02/1`,
	Run: func(cmd *cobra.Command, args []string) {
		defer cliUsage(time.Now(), "describe")
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

		if odtoolsFlags.describe.message != "" {
			root, err := s.Root(ctx)
			if err != nil {
				wrapFatalln("open store root", err)
				return
			}
			err = core.SetDescription(ctx, root, odtoolsFlags.describe.message,
				core.WithLogger(getLogger()),
				core.WithMetrics(odtoolsFlags.root.metrics.IsEnabled()),
			)
			if err != nil {
				wrapFatalln("set description", err)
				return
			}
		}

		e, err := entryAt(ctx, s, odtoolsFlags.entry.of)
		if err != nil {
			wrapFatalln("open entry", err)
			return
		}
		desc, err := core.Describe(ctx, e)
		if err != nil {
			wrapFatalln("describe entry", err)
			return
		}
		t := lineTemplate(odtoolsFlags, describeTemplateString)
		if err := printTemplate(t, desc); err != nil {
			wrapFatalln("executing template", err)
			return
		}
	},
}

func init() {
	addOfFlag(describeCmd)
	addMessageFlag(describeCmd)
	rootCmd.AddCommand(describeCmd)
}
