package cmd

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/oneconcern/odtools/pkg/dlogger"
	"github.com/oneconcern/odtools/pkg/store"
	"github.com/oneconcern/odtools/pkg/store/badgerdb"
	"github.com/oneconcern/odtools/pkg/store/instrumented"
	"github.com/oneconcern/odtools/pkg/store/localfs"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type flagsT struct {
	root struct {
		store    string
		backend  string
		logLevel string
		metrics  metricsFlags
	}
	entry struct {
		subject string
		date    string
		session int
		of      string
	}
	describe struct {
		message string
	}
	domain struct {
		name       string
		number     int
		definition string
	}
	dataset struct {
		name        string
		source      string
		destination string
		definition  string
		unit        string
		noOverwrite bool
	}
	attr struct {
		key        string
		value      string
		definition string
		unit       string
	}
	copy struct {
		from        string
		to          string
		destStore   string
		destBackend string
		depth       int
		noDatasets  bool
	}
	export struct {
		format string
		path   string
	}
	core struct {
		Template string
	}
}

var odtoolsFlags = flagsT{}

func addStoreFlag(cmd *cobra.Command) string {
	c := "store"
	cmd.PersistentFlags().StringVar(&odtoolsFlags.root.store, c, "",
		"Path to the data store (a directory)")
	return c
}

func addBackendFlag(cmd *cobra.Command) string {
	c := "backend"
	cmd.PersistentFlags().StringVar(&odtoolsFlags.root.backend, c, "",
		`Store backend: "localfs" or "badger"`)
	return c
}

func addLogLevel(cmd *cobra.Command) string {
	c := "loglevel"
	cmd.PersistentFlags().StringVar(&odtoolsFlags.root.logLevel, c, "",
		"The logging level. Levels by increasing order of verbosity: none, info, debug")
	return c
}

func addTemplateFlag(cmd *cobra.Command) string {
	c := "format"
	cmd.PersistentFlags().StringVar(&odtoolsFlags.core.Template, c, "",
		`Pretty-print listed objects using a Go template. Use '{{ printf "%#v" . }}' to explore available fields`)
	return c
}

func addSubjectFlag(cmd *cobra.Command) string {
	c := "subject"
	if cmd != nil {
		cmd.Flags().StringVar(&odtoolsFlags.entry.subject, c, "", "The name of the subject")
	}
	return c
}

func addDateFlag(cmd *cobra.Command) string {
	c := "date"
	if cmd != nil {
		cmd.Flags().StringVar(&odtoolsFlags.entry.date, c, "",
			"The acquisition date, conventionally YYYY-MM-DD")
	}
	return c
}

func addSessionFlag(cmd *cobra.Command) string {
	c := "session"
	if cmd != nil {
		cmd.Flags().IntVar(&odtoolsFlags.entry.session, c, 1, "The session number")
	}
	return c
}

func addOfFlag(cmd *cobra.Command) string {
	c := "of"
	if cmd != nil {
		cmd.Flags().StringVar(&odtoolsFlags.entry.of, c, "",
			"The slash-delimited path of the target entry, e.g. subj-1/2020-01-02/1")
	}
	return c
}

func addMessageFlag(cmd *cobra.Command) string {
	c := "message"
	cmd.Flags().StringVar(&odtoolsFlags.describe.message, c, "",
		"The description of the experiment")
	return c
}

func addNameFlag(cmd *cobra.Command, target *string, usage string) string {
	c := "name"
	cmd.Flags().StringVar(target, c, "", usage)
	return c
}

func addNumberFlag(cmd *cobra.Command) string {
	c := "number"
	cmd.Flags().IntVar(&odtoolsFlags.domain.number, c, 1, "The run number")
	return c
}

func addDefinitionFlag(cmd *cobra.Command, target *string) string {
	c := "definition"
	cmd.Flags().StringVar(target, c, "",
		"The definition: what this object means, in plain words")
	return c
}

func addUnitFlag(cmd *cobra.Command, target *string) string {
	c := "unit"
	cmd.Flags().StringVar(target, c, "", "The physical unit, when applicable")
	return c
}

func addSourceFlag(cmd *cobra.Command) string {
	c := "source"
	cmd.Flags().StringVar(&odtoolsFlags.dataset.source, c, "",
		`The file holding the dataset payload, or "-" for stdin`)
	return c
}

func addDestinationFlag(cmd *cobra.Command) string {
	c := "destination"
	cmd.Flags().StringVar(&odtoolsFlags.dataset.destination, c, "-",
		`The file to write the dataset payload to, or "-" for stdout`)
	return c
}

func addNoOverwriteFlag(cmd *cobra.Command) string {
	c := "no-overwrite"
	cmd.Flags().BoolVar(&odtoolsFlags.dataset.noOverwrite, c, false,
		"Refuse to replace an existing dataset")
	return c
}

func addKeyFlag(cmd *cobra.Command) string {
	c := "key"
	cmd.Flags().StringVar(&odtoolsFlags.attr.key, c, "",
		"The slash-delimited attribute key, e.g. probe/depth")
	return c
}

func addValueFlag(cmd *cobra.Command) string {
	c := "value"
	cmd.Flags().StringVar(&odtoolsFlags.attr.value, c, "",
		"The attribute value. Integers, floats and booleans are stored typed")
	return c
}

func addFromFlag(cmd *cobra.Command) string {
	c := "from"
	cmd.Flags().StringVar(&odtoolsFlags.copy.from, c, "",
		"The slash-delimited path of the source entry, empty for the root")
	return c
}

func addToFlag(cmd *cobra.Command) string {
	c := "to"
	cmd.Flags().StringVar(&odtoolsFlags.copy.to, c, "",
		"The slash-delimited path of the destination entry, empty for the root")
	return c
}

func addDestStoreFlag(cmd *cobra.Command) string {
	c := "dest-store"
	cmd.Flags().StringVar(&odtoolsFlags.copy.destStore, c, "",
		"Path to the destination store. Defaults to the source store")
	return c
}

func addDestBackendFlag(cmd *cobra.Command) string {
	c := "dest-backend"
	cmd.Flags().StringVar(&odtoolsFlags.copy.destBackend, c, "",
		"Backend of the destination store. Defaults to the source backend")
	return c
}

func addDepthFlag(cmd *cobra.Command) string {
	c := "depth"
	cmd.Flags().IntVar(&odtoolsFlags.copy.depth, c, -1,
		"Limit the recursion depth, negative for unlimited")
	return c
}

func addNoDatasetsFlag(cmd *cobra.Command) string {
	c := "no-datasets"
	cmd.Flags().BoolVar(&odtoolsFlags.copy.noDatasets, c, false,
		"Leave dataset payloads out")
	return c
}

func addExportFormatFlag(cmd *cobra.Command) string {
	c := "format"
	cmd.Flags().StringVar(&odtoolsFlags.export.format, c, "yaml",
		`Export format: "yaml" or "json"`)
	return c
}

func addExportPathFlag(cmd *cobra.Command) string {
	c := "path"
	cmd.Flags().StringVar(&odtoolsFlags.export.path, c, "",
		"The slash-delimited path of the entry to export, empty for the whole store")
	return c
}

var (
	onceLogger sync.Once
	logger     *zap.Logger
)

func getLogger() *zap.Logger {
	onceLogger.Do(func() {
		var err error
		logger, err = dlogger.GetLogger(odtoolsFlags.root.logLevel)
		if err != nil {
			wrapFatalln("failed to set log level", err)
		}
	})
	return logger
}

// openStore opens the store selected by --store and --backend.
func openStore(pth, backend string) (store.Store, error) {
	if pth == "" {
		return nil, fmt.Errorf("no store specified: use --store or set it in the config file")
	}

	var (
		s   store.Store
		err error
	)
	switch backend {
	case "", "localfs":
		s = localfs.New(afero.NewBasePathFs(afero.NewOsFs(), pth))
	case "badger":
		s, err = badgerdb.New(pth)
		if err != nil {
			return nil, fmt.Errorf("opening badger store at %q: %w", pth, err)
		}
	default:
		return nil, fmt.Errorf("unknown backend %q: use localfs or badger", backend)
	}

	if odtoolsFlags.root.logLevel == "debug" {
		s = instrumented.New(s, instrumented.WithLogger(getLogger()))
	}
	return s, nil
}

func srcStore() (store.Store, error) {
	return openStore(odtoolsFlags.root.store, odtoolsFlags.root.backend)
}

// entryAt walks the slash-delimited path down from the store root.
func entryAt(ctx context.Context, s store.Store, pth string) (store.Entry, error) {
	e, err := s.Root(ctx)
	if err != nil {
		return nil, err
	}
	if pth == "" {
		return e, nil
	}
	for _, segment := range strings.Split(pth, "/") {
		e, err = e.Child(ctx, segment)
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

// createAt walks the slash-delimited path down from the store root,
// creating missing entries along the way.
func createAt(ctx context.Context, s store.Store, pth string) (store.Entry, error) {
	e, err := s.Root(ctx)
	if err != nil {
		return nil, err
	}
	if pth == "" {
		return e, nil
	}
	for _, segment := range strings.Split(pth, "/") {
		e, err = e.Create(ctx, segment)
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

// writeMode maps the --no-overwrite flag to the store write mode.
func writeMode() store.WriteMode {
	if odtoolsFlags.dataset.noOverwrite {
		return store.NoOverWrite
	}
	return store.OverWrite
}

/** misc util */

// requireFlags sets a flag (local to the command or inherited) as required
func requireFlags(cmd *cobra.Command, flags ...string) {
	for _, flag := range flags {
		err := cmd.MarkFlagRequired(flag)
		if err != nil {
			err = cmd.MarkPersistentFlagRequired(flag)
		}
		if err != nil {
			wrapFatalln(fmt.Sprintf("error attempting to mark the required flag %q", flag), err)
			return
		}
	}
}
