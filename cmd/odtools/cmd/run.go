package cmd

import (
	"context"
	"time"

	"github.com/oneconcern/odtools/pkg/core"
	"github.com/spf13/cobra"
)

// runCmd represents the run related commands
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Commands to manage numbered runs",
	Long: `Commands to manage numbered runs under a domain.

A run is a domain entry named by its number: repetitions of the same
protocol within a session.`,
}

var runAdd = &cobra.Command{
	Use:     "add",
	Short:   "Add a numbered run under a domain",
	Example: `% odtools run add --store /data/exp1 --of subj-001/2020-01-02/1/ephys --number 1 --definition "first pass"`,
	Run: func(cmd *cobra.Command, args []string) {
		defer cliUsage(time.Now(), "run add")
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

		parent, err := entryAt(ctx, s, odtoolsFlags.entry.of)
		if err != nil {
			wrapFatalln("open entry", err)
			return
		}
		_, err = core.AddRun(ctx, parent, odtoolsFlags.domain.number, odtoolsFlags.domain.definition,
			core.WithLogger(getLogger()),
			core.WithMetrics(odtoolsFlags.root.metrics.IsEnabled()),
		)
		if err != nil {
			wrapFatalln("add run", err)
			return
		}
	},
}

func init() {
	requireFlags(runAdd,
		addOfFlag(runAdd),
		addDefinitionFlag(runAdd, &odtoolsFlags.domain.definition),
	)
	addNumberFlag(runAdd)
	runCmd.AddCommand(runAdd)
	rootCmd.AddCommand(runCmd)
}
