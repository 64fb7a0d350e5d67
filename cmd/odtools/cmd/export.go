package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/oneconcern/odtools/pkg/core"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an entry subtree as YAML or JSON",
	Long: `Export an entry subtree to stdout: attributes, dataset inventory
and children, recursively. Payload bytes are not exported, only their
recorded fingerprints and sizes: use copy to replicate payloads.`,
	Example: `% odtools export --store /data/exp1 --path subj-001 --format json`,
	Run: func(cmd *cobra.Command, args []string) {
		defer cliUsage(time.Now(), "export")
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

		e, err := entryAt(ctx, s, odtoolsFlags.export.path)
		if err != nil {
			wrapFatalln("open entry", err)
			return
		}

		opts := []core.Option{
			core.WithDepth(odtoolsFlags.copy.depth),
			core.WithMetrics(odtoolsFlags.root.metrics.IsEnabled()),
		}
		switch odtoolsFlags.export.format {
		case "", "yaml":
			err = core.ExportYAML(ctx, e, os.Stdout, opts...)
		case "json":
			err = core.ExportJSON(ctx, e, os.Stdout, opts...)
		default:
			err = fmt.Errorf("unknown format %q: use yaml or json", odtoolsFlags.export.format)
		}
		if err != nil {
			wrapFatalln("export entry", err)
			return
		}
	},
}

func init() {
	addExportFormatFlag(exportCmd)
	addExportPathFlag(exportCmd)
	addDepthFlag(exportCmd)
	rootCmd.AddCommand(exportCmd)
}
