package metrics

import (
	"context"
	"time"

	"go.opencensus.io/stats/view"
)

// Option defines some options to the metrics initialization.
type Option func(*settings)

// WithExporter configures the exporter conveying metrics to some backend
// collector.
func WithExporter(exporter view.Exporter) Option {
	return func(m *settings) {
		if exporter != nil {
			m.exporter = exporter
		}
	}
}

// WithContexter sets a context generation function for recorded
// measurements. The default contexter is context.Background.
func WithContexter(c func() context.Context) Option {
	return func(m *settings) {
		if c != nil {
			m.contexter = c
		}
	}
}

// WithReportingPeriod configures how often the exporter uploads metrics.
// Durations under 1 sec do not have any effect. The default is 10s.
func WithReportingPeriod(d time.Duration) Option {
	return func(m *settings) {
		m.d = d
	}
}
