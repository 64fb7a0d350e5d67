package cmd

import (
	"context"
	"time"

	"github.com/oneconcern/odtools/pkg/core"
	"github.com/spf13/cobra"
)

// fileCmd represents the attached file related commands
var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "Commands to manage files attached by reference",
	Long: `Commands to manage files attached by reference.

Unlike a dataset, an attached file is not streamed through the store: its
definition is recorded and its absolute on-disk path resolved, for payloads
other tools write in place. Only filesystem backed stores resolve paths.`,
}

var fileAdd = &cobra.Command{
	Use:     "add",
	Short:   "Attach a file and print its resolved path",
	Example: `% odtools file add --store /data/exp1 --of subj-001/2020-01-02/1 --name video.avi --definition "behavior video"
/data/exp1/subj-001/2020-01-02/1/video.avi`,
	Run: func(cmd *cobra.Command, args []string) {
		defer cliUsage(time.Now(), "file add")
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
		pth, err := core.AddFilepath(ctx, parent, odtoolsFlags.dataset.name, odtoolsFlags.dataset.definition,
			core.WithLogger(getLogger()),
			core.WithMetrics(odtoolsFlags.root.metrics.IsEnabled()),
		)
		if err != nil {
			wrapFatalln("attach file", err)
			return
		}
		infoLogger.Println(pth)
	},
}

func init() {
	requireFlags(fileAdd,
		addOfFlag(fileAdd),
		addNameFlag(fileAdd, &odtoolsFlags.dataset.name, "The name of the attached file"),
		addDefinitionFlag(fileAdd, &odtoolsFlags.dataset.definition),
	)
	fileCmd.AddCommand(fileAdd)
	rootCmd.AddCommand(fileCmd)
}
