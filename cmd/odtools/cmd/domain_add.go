package cmd

import (
	"context"
	"time"

	"github.com/oneconcern/odtools/pkg/core"
	"github.com/spf13/cobra"
)

var domainAdd = &cobra.Command{
	Use:     "add",
	Short:   "Add a domain under a session or another domain",
	Example: `% odtools domain add --store /data/exp1 --of subj-001/2020-01-02/1 --name ephys --definition "extracellular recordings"`,
	Run: func(cmd *cobra.Command, args []string) {
		defer cliUsage(time.Now(), "domain add")
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
		_, err = core.AddDomain(ctx, parent, odtoolsFlags.domain.name, odtoolsFlags.domain.definition,
			core.WithLogger(getLogger()),
			core.WithMetrics(odtoolsFlags.root.metrics.IsEnabled()),
		)
		if err != nil {
			wrapFatalln("add domain", err)
			return
		}
	},
}

func init() {
	requireFlags(domainAdd,
		addOfFlag(domainAdd),
		addNameFlag(domainAdd, &odtoolsFlags.domain.name, "The name of the domain"),
		addDefinitionFlag(domainAdd, &odtoolsFlags.domain.definition),
	)
	domainCmd.AddCommand(domainAdd)
}
