package cmd

import (
	"context"
	"strconv"
	"time"

	"github.com/oneconcern/odtools/pkg/core"
	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"
)

// attrCmd represents the attribute related commands
var attrCmd = &cobra.Command{
	Use:   "attr",
	Short: "Commands to manage attributes",
	Long: `Commands to manage attributes of an entry.

An attribute is a leaf holding a definition, a value and an optional unit,
addressed by a slash-delimited key.`,
}

// parseAttrValue keeps typed values typed: integers, floats and booleans
// survive the command line as such, everything else stays a string.
func parseAttrValue(s string) interface{} {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

var attrSet = &cobra.Command{
	Use:     "set",
	Short:   "Set an attribute on an entry",
	Example: `% odtools attr set --store /data/exp1 --of subj-001/2020-01-02/1 --key temperature --value 36.5 --definition "room temperature" --unit celsius`,
	Run: func(cmd *cobra.Command, args []string) {
		defer cliUsage(time.Now(), "attr set")
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
		err = core.AddAttribute(ctx, e, odtoolsFlags.attr.key, parseAttrValue(odtoolsFlags.attr.value),
			core.WithDefinition(odtoolsFlags.attr.definition),
			core.WithUnit(odtoolsFlags.attr.unit),
			core.WithLogger(getLogger()),
		)
		if err != nil {
			wrapFatalln("set attribute", err)
			return
		}
		if err = core.CommitAttrs(ctx, e); err != nil {
			wrapFatalln("commit attributes", err)
			return
		}
	},
}

var attrGet = &cobra.Command{
	Use:     "get",
	Short:   "Get an attribute of an entry",
	Example: `% odtools attr get --store /data/exp1 --of subj-001/2020-01-02/1 --key temperature
36.5`,
	Run: func(cmd *cobra.Command, args []string) {
		defer cliUsage(time.Now(), "attr get")
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
		value, err := core.GetAttribute(ctx, e, odtoolsFlags.attr.key)
		if err != nil {
			wrapFatalln("get attribute", err)
			return
		}
		rendered, err := yaml.Marshal(value)
		if err != nil {
			wrapFatalln("render attribute", err)
			return
		}
		logStdOut("%s", rendered)
	},
}

func init() {
	requireFlags(attrSet,
		addOfFlag(attrSet),
		addKeyFlag(attrSet),
		addValueFlag(attrSet),
		addDefinitionFlag(attrSet, &odtoolsFlags.attr.definition),
	)
	addUnitFlag(attrSet, &odtoolsFlags.attr.unit)
	attrCmd.AddCommand(attrSet)

	requireFlags(attrGet,
		addOfFlag(attrGet),
		addKeyFlag(attrGet),
	)
	attrCmd.AddCommand(attrGet)

	rootCmd.AddCommand(attrCmd)
}
