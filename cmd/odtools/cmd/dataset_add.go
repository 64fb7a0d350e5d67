package cmd

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/oneconcern/odtools/pkg/core"
	"github.com/spf13/cobra"
)

var datasetAdd = &cobra.Command{
	Use:   "add",
	Short: "Add a dataset to a session or domain",
	Long: `Add a dataset to a session or domain. The payload streams from
--source and is fingerprinted on the way in.`,
	Example: `% odtools dataset add --store /data/exp1 --of subj-001/2020-01-02/1/ephys \
    --name spikes.bin --source ./spikes.bin --definition "spike times" --unit ms`,
	Run: func(cmd *cobra.Command, args []string) {
		defer cliUsage(time.Now(), "dataset add")
		initMetrics()
		ctx := context.Background()

		var (
			r   io.Reader
			err error
		)
		if odtoolsFlags.dataset.source == "-" {
			r = os.Stdin
		} else {
			f, err := os.Open(odtoolsFlags.dataset.source)
			if err != nil {
				wrapFatalln("open source file", err)
				return
			}
			defer func() {
				_ = f.Close()
			}()
			r = f
		}

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
		info, err := core.AddDataset(ctx, parent, odtoolsFlags.dataset.name, r,
			core.WithDefinition(odtoolsFlags.dataset.definition),
			core.WithUnit(odtoolsFlags.dataset.unit),
			core.WithMode(writeMode()),
			core.WithLogger(getLogger()),
			core.WithMetrics(odtoolsFlags.root.metrics.IsEnabled()),
		)
		if err != nil {
			wrapFatalln("add dataset", err)
			return
		}
		t := lineTemplate(odtoolsFlags, datasetLineTemplateString)
		if err := printTemplate(t, info); err != nil {
			wrapFatalln("executing template", err)
			return
		}
	},
}

func init() {
	requireFlags(datasetAdd,
		addOfFlag(datasetAdd),
		addNameFlag(datasetAdd, &odtoolsFlags.dataset.name, "The name of the dataset"),
		addSourceFlag(datasetAdd),
		addDefinitionFlag(datasetAdd, &odtoolsFlags.dataset.definition),
	)
	addUnitFlag(datasetAdd, &odtoolsFlags.dataset.unit)
	addNoOverwriteFlag(datasetAdd)
	datasetCmd.AddCommand(datasetAdd)
}
