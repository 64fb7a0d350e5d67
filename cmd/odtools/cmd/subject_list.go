package cmd

import (
	"context"
	"time"

	"github.com/oneconcern/odtools/pkg/core"
	"github.com/spf13/cobra"
)

var subjectList = &cobra.Command{
	Use:   "list",
	Short: "List subjects",
	Long:  `List the subjects of the experiment, in name order`,
	Example: `% odtools subject list --store /data/exp1
subj-001
subj-002`,
	Run: func(cmd *cobra.Command, args []string) {
		defer cliUsage(time.Now(), "subject list")
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

		root, err := s.Root(ctx)
		if err != nil {
			wrapFatalln("open store root", err)
			return
		}
		subjects, err := core.ListSubjects(ctx, root,
			core.WithMetrics(odtoolsFlags.root.metrics.IsEnabled()),
		)
		if err != nil {
			wrapFatalln("list subjects", err)
			return
		}
		t := lineTemplate(odtoolsFlags, subjectLineTemplateString)
		for _, toPin := range subjects {
			subject := toPin
			if err := printTemplate(t, subject); err != nil {
				wrapFatalln("executing template", err)
				return
			}
		}
	},
}

func init() {
	subjectCmd.AddCommand(subjectList)
}
