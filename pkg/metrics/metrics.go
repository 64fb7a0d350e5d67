// Package metrics instruments the odtools operations with opencensus.
//
// Metrics are disabled until Init is called: the recording helpers are
// cheap no-ops when no exporter is registered.
package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/docker/go-units"
	"github.com/oneconcern/odtools/pkg/metrics/exporters/influxdb"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

const (
	// KB stands for kilo bytes (1024 bytes)
	KB = units.KiB

	// MB stands for mega bytes (1024 kilo bytes)
	MB = units.MiB

	// GB stands for giga bytes (1024 mega bytes)
	GB = units.GiB
)

var (
	mEntries      = stats.Int64("odtools/entries_created", "entries created counter", stats.UnitDimensionless)
	mDatasets     = stats.Int64("odtools/datasets_written", "datasets written counter", stats.UnitDimensionless)
	mDatasetBytes = stats.Int64("odtools/dataset_bytes", "dataset cumulated bytes", stats.UnitBytes)
	mDuration     = stats.Float64("odtools/op_duration", "operation duration in milliseconds", stats.UnitMilliseconds)
	mCopies       = stats.Int64("odtools/copies", "copy operations counter", stats.UnitDimensionless)

	// KeyLevel tags entry creations with their hierarchy level
	KeyLevel = tag.MustNewKey("level")

	// KeyOp tags durations with the operation name
	KeyOp = tag.MustNewKey("op")

	mp       *settings
	initOnce sync.Once
)

type settings struct {
	exporter  view.Exporter
	contexter func() context.Context
	d         time.Duration
	views     []*view.View
}

func defaultSettings() *settings {
	return &settings{
		contexter: context.Background,
	}
}

// DefaultExporter returns a metrics exporter for an influxdb backend, with
// db "odtools" and time series "metrics".
func DefaultExporter(opts ...influxdb.Option) view.Exporter {
	sink, _ := influxdb.NewStore(
		influxdb.WithDatabase("odtools"),
		influxdb.WithNameAsTag("metrics"),
	)
	return influxdb.NewExporter(
		append([]influxdb.Option{
			influxdb.WithStore(sink),
			influxdb.WithTags(map[string]string{"service": "odtools"}),
		}, opts...)...,
	)
}

func allViews() []*view.View {
	return []*view.View{
		{
			Name:        "odtools/entries_created",
			Description: "entries created, by hierarchy level",
			Measure:     mEntries,
			Aggregation: view.Count(),
			TagKeys:     []tag.Key{KeyLevel},
		},
		{
			Name:        "odtools/datasets_written",
			Description: "datasets written",
			Measure:     mDatasets,
			Aggregation: view.Count(),
		},
		{
			Name:        "odtools/dataset_bytes",
			Description: "dataset payload bytes written [cumulated]",
			Measure:     mDatasetBytes,
			Aggregation: view.Sum(),
		},
		{
			Name:        "odtools/op_duration",
			Description: "operation duration [distribution]",
			Measure:     mDuration,
			Aggregation: durationDistribution(),
			TagKeys:     []tag.Key{KeyOp},
		},
		{
			Name:        "odtools/copies",
			Description: "copy operations",
			Measure:     mCopies,
			Aggregation: view.Count(),
		},
	}
}

func durationDistribution() *view.Aggregation {
	// buckets in milliseconds
	return view.Distribution(
		1, 5, 10, 50,
		100, 300, 500, 700, 900,
		1000, 3000, 5000, 10000, 30000,
	)
}

// Init registers the odtools views and an exporter. The first call wins,
// later calls are no-ops.
func Init(opts ...Option) {
	initOnce.Do(func() {
		mp = defaultSettings()
		for _, apply := range opts {
			apply(mp)
		}
		if mp.exporter == nil {
			mp.exporter = DefaultExporter()
		}
		mp.views = allViews()
		_ = view.Register(mp.views...)
		view.RegisterExporter(mp.exporter)
		if mp.d >= time.Second {
			view.SetReportingPeriod(mp.d)
		}
	})
}

// Enabled tells if Init has been called.
func Enabled() bool {
	return mp != nil
}

func record(mutators []tag.Mutator, measurements ...stats.Measurement) {
	if mp == nil {
		return
	}
	_ = stats.RecordWithTags(mp.contexter(), mutators, measurements...)
}

// IncEntry counts one created entry at a hierarchy level.
func IncEntry(level string) {
	record([]tag.Mutator{tag.Upsert(KeyLevel, level)}, mEntries.M(1))
}

// IncDataset counts one written dataset.
func IncDataset() {
	record(nil, mDatasets.M(1))
}

// DatasetBytes cumulates dataset payload bytes written.
func DatasetBytes(n int64) {
	record(nil, mDatasetBytes.M(n))
}

// Duration records the duration of an operation.
func Duration(op string, d time.Duration) {
	record([]tag.Mutator{tag.Upsert(KeyOp, op)}, mDuration.M(float64(d.Milliseconds())))
}

// IncCopy counts one copy operation.
func IncCopy() {
	record(nil, mCopies.M(1))
}

// Flush collects the remaining data for the registered views and exports
// them immediately.
func Flush() {
	if mp == nil {
		return
	}
	for _, v := range mp.views {
		rows, err := view.RetrieveData(v.Name)
		if err != nil {
			continue // ignore errors when pushing metrics
		}
		mp.exporter.ExportView(&view.Data{
			View:  v,
			Start: time.Now(),
			End:   time.Now(),
			Rows:  rows,
		})
	}
	if f, ok := mp.exporter.(interface{ Flush() }); ok {
		f.Flush()
	}
}
