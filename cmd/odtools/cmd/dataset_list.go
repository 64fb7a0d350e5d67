package cmd

import (
	"context"
	"time"

	"github.com/oneconcern/odtools/pkg/core"
	"github.com/spf13/cobra"
)

var datasetList = &cobra.Command{
	Use:   "list",
	Short: "List datasets of a session or domain",
	Example: `% odtools dataset list --store /data/exp1 --of subj-001/2020-01-02/1/ephys
spikes.bin , spike times , 1.049MB , 7aa9b1...`,
	Run: func(cmd *cobra.Command, args []string) {
		defer cliUsage(time.Now(), "dataset list")
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

		e, err := entryAt(ctx, s, odtoolsFlags.entry.of)
		if err != nil {
			wrapFatalln("open entry", err)
			return
		}
		datasets, err := core.ListDatasets(ctx, e,
			core.WithMetrics(odtoolsFlags.root.metrics.IsEnabled()),
		)
		if err != nil {
			wrapFatalln("list datasets", err)
			return
		}
		t := lineTemplate(odtoolsFlags, datasetLineTemplateString)
		for _, toPin := range datasets {
			dataset := toPin
			if err := printTemplate(t, dataset); err != nil {
				wrapFatalln("executing template", err)
				return
			}
		}
	},
}

func init() {
	requireFlags(datasetList, addOfFlag(datasetList))
	datasetCmd.AddCommand(datasetList)
}
