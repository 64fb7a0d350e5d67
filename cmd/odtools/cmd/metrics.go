package cmd

import (
	"time"

	"github.com/oneconcern/odtools/pkg/metrics"
	"github.com/oneconcern/odtools/pkg/metrics/exporters/influxdb"
	"github.com/spf13/cobra"
)

type metricsFlags struct {
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"` // pointer because we want to distinguish unset from false
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`
}

func (m metricsFlags) IsEnabled() bool {
	return m.Enabled != nil && *m.Enabled
}

func addMetricsFlag(cmd *cobra.Command) string {
	c := "metrics"
	defaultMetrics := false
	odtoolsFlags.root.metrics.Enabled = &defaultMetrics
	cmd.PersistentFlags().BoolVar(odtoolsFlags.root.metrics.Enabled, c, defaultMetrics,
		"Toggle metrics collection")
	return c
}

func addMetricsURLFlag(cmd *cobra.Command) string {
	c := "metrics-url"
	cmd.PersistentFlags().StringVar(&odtoolsFlags.root.metrics.URL, c, "",
		"Fully qualified URL to an influxdb metrics collector, with optional user and password")
	return c
}

// initMetrics registers the influxdb exporter when metrics are enabled.
func initMetrics() {
	m := odtoolsFlags.root.metrics
	if !m.IsEnabled() {
		return
	}
	var opts []influxdb.Option
	if m.URL != "" {
		sink, err := influxdb.NewStore(
			influxdb.WithDatabase("odtools"),
			influxdb.WithNameAsTag("metrics"),
			influxdb.WithURL(m.URL),
		)
		if err != nil {
			wrapFatalln("invalid metrics collector URL", err)
			return
		}
		opts = append(opts, influxdb.WithStore(sink))
	}
	metrics.Init(metrics.WithExporter(metrics.DefaultExporter(opts...)))
}

// cliUsage records the duration of a command. This is intended to be used
// in some defer statement. Metrics are flushed as soon as the command is done.
func cliUsage(t0 time.Time, command string) {
	if odtoolsFlags.root.metrics.IsEnabled() {
		metrics.Duration(command, time.Since(t0))
		metrics.Flush()
	}
}
