package cmd

import (
	"context"
	"time"

	"github.com/oneconcern/odtools/pkg/core"
	"github.com/spf13/cobra"
)

var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy an entry subtree, possibly across stores",
	Long: `Copy an entry subtree: attributes, dataset payloads and children.

Payloads are verified against their recorded fingerprints while they
stream. With --dest-store, the copy lands in another store, so a badger
store can be exported to plain files and back.`,
	Example: `% odtools copy --store /data/exp1 --from subj-001 --to subj-001-backup
% odtools copy --store /data/exp1 --dest-store /archive/exp1 --dest-backend badger`,
	Run: func(cmd *cobra.Command, args []string) {
		defer cliUsage(time.Now(), "copy")
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

		dest := s
		if odtoolsFlags.copy.destStore != "" {
			backend := odtoolsFlags.copy.destBackend
			if backend == "" {
				backend = odtoolsFlags.root.backend
			}
			dest, err = openStore(odtoolsFlags.copy.destStore, backend)
			if err != nil {
				wrapFatalln("open destination store", err)
				return
			}
			defer func() {
				_ = dest.Close()
			}()
		}

		src, err := entryAt(ctx, s, odtoolsFlags.copy.from)
		if err != nil {
			wrapFatalln("open source entry", err)
			return
		}
		dst, err := createAt(ctx, dest, odtoolsFlags.copy.to)
		if err != nil {
			wrapFatalln("open destination entry", err)
			return
		}
		err = core.CopyEntry(ctx, src, dst,
			core.WithDepth(odtoolsFlags.copy.depth),
			core.WithDatasets(!odtoolsFlags.copy.noDatasets),
			core.WithLogger(getLogger()),
			core.WithMetrics(odtoolsFlags.root.metrics.IsEnabled()),
		)
		if err != nil {
			wrapFatalln("copy entry", err)
			return
		}
	},
}

func init() {
	addFromFlag(copyCmd)
	addToFlag(copyCmd)
	addDestStoreFlag(copyCmd)
	addDestBackendFlag(copyCmd)
	addDepthFlag(copyCmd)
	addNoDatasetsFlag(copyCmd)
	rootCmd.AddCommand(copyCmd)
}
