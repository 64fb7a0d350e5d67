package cmd

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/oneconcern/odtools/pkg/core"
	"github.com/spf13/cobra"
)

var datasetGet = &cobra.Command{
	Use:   "get",
	Short: "Retrieve a dataset payload",
	Long: `Retrieve a dataset payload, streamed to --destination
(stdout by default).`,
	Example: `% odtools dataset get --store /data/exp1 --of subj-001/2020-01-02/1/ephys --name spikes.bin --destination ./spikes.bin`,
	Run: func(cmd *cobra.Command, args []string) {
		defer cliUsage(time.Now(), "dataset get")
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
		rdr, _, err := core.GetDataset(ctx, parent, odtoolsFlags.dataset.name)
		if err != nil {
			wrapFatalln("get dataset", err)
			return
		}
		defer func() {
			_ = rdr.Close()
		}()

		var w io.Writer
		if odtoolsFlags.dataset.destination == "-" {
			w = os.Stdout
		} else {
			f, err := os.Create(odtoolsFlags.dataset.destination)
			if err != nil {
				wrapFatalln("create destination file", err)
				return
			}
			defer func() {
				_ = f.Close()
			}()
			w = f
		}
		if _, err := io.Copy(w, rdr); err != nil {
			wrapFatalln("write payload", err)
			return
		}
	},
}

func init() {
	requireFlags(datasetGet,
		addOfFlag(datasetGet),
		addNameFlag(datasetGet, &odtoolsFlags.dataset.name, "The name of the dataset"),
	)
	addDestinationFlag(datasetGet)
	datasetCmd.AddCommand(datasetGet)
}
