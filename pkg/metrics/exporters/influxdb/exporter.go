package influxdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var _ view.Exporter = &Exporter{}

const (
	// opencensus information represented as influxdb tags
	descriptionTag = "description"
	unitTag        = "unit"
	aggregationTag = "aggregation"

	// opencensus information represented as influxdb fields
	startField       = "start"
	observationField = "observationPeriod"
	valueField       = "value"
	minField         = "min"
	maxField         = "max"
	meanField        = "mean"
	countField       = "count"
)

func defaultExporter() *Exporter {
	sink, _ := NewStore()
	return &Exporter{
		errorHandler:  func(_ error) {},
		store:         sink,
		batchSize:     64,
		flushInterval: 10 * time.Second,
	}
}

// NewExporter creates a new influxdb exporter.
//
// Points are buffered and written in batches: a batch goes out when it
// reaches the configured size or when the flush interval has elapsed since
// the last write. Use Close to push out the remainder.
func NewExporter(opts ...Option) *Exporter {
	e := defaultExporter()
	for _, apply := range opts {
		apply(e)
	}
	e.lastFlush = time.Now()
	return e
}

// Exporter is an opencensus view exporter for influxdb.
type Exporter struct {
	store        Store
	errorHandler func(error)
	customTags   map[string]string

	batchSize     int
	flushInterval time.Duration

	mx        sync.Mutex
	buffer    []MetricPoint
	lastFlush time.Time
}

// ExportView buffers the collected rows of a view, flushing the batch when
// it is due.
func (e *Exporter) ExportView(viewData *view.Data) {
	points := make([]MetricPoint, 0, len(viewData.Rows))
	for _, row := range viewData.Rows {
		fields := make(map[string]interface{}, 8)
		tags := make(map[string]string, len(e.customTags)+len(row.Tags)+3)

		fields[startField] = viewData.Start.Format(time.RFC3339Nano)
		fields[observationField] = viewData.End.Sub(viewData.Start).String()
		if viewData.View.Description != "" {
			tags[descriptionTag] = viewData.View.Description
		}
		tags[unitTag] = viewData.View.Measure.Unit()

		switch d := row.Data.(type) {
		case *view.CountData:
			fields[valueField] = float64(d.Value)
			tags[aggregationTag] = "count"
		case *view.DistributionData:
			fields[minField] = d.Min
			fields[maxField] = d.Max
			fields[meanField] = d.Mean
			fields[countField] = d.Count
			tags[aggregationTag] = "distribution"
		case *view.LastValueData:
			fields[valueField] = d.Value
			tags[aggregationTag] = "last"
		case *view.SumData:
			fields[valueField] = d.Value
			tags[aggregationTag] = "sum"
		default:
			e.errorHandler(fmt.Errorf("unknown AggregationData type: %T", row.Data))
			return
		}

		appendAndReplace(tags, e.customTags)
		appendAndReplace(tags, convertTags(row.Tags))

		points = append(points, MetricPoint{
			Measurement: viewData.View.Name,
			Tags:        tags,
			Fields:      fields,
			Timestamp:   viewData.End,
		})
	}

	e.mx.Lock()
	e.buffer = append(e.buffer, points...)
	due := len(e.buffer) >= e.batchSize || time.Since(e.lastFlush) >= e.flushInterval
	e.mx.Unlock()

	if due {
		e.Flush()
	}
}

// Flush writes out the buffered points.
func (e *Exporter) Flush() {
	e.mx.Lock()
	batch := e.buffer
	e.buffer = nil
	e.lastFlush = time.Now()
	e.mx.Unlock()

	if len(batch) == 0 {
		return
	}
	if err := e.store.WriteBatch(context.Background(), batch); err != nil {
		e.errorHandler(err)
	}
}

// Close flushes the remainder and releases the underlying client.
func (e *Exporter) Close() error {
	e.Flush()
	return e.store.Close()
}

// appendAndReplace appends all the data from src to dst. If both have the
// same key, the one from src wins.
func appendAndReplace(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}

func convertTags(tags []tag.Tag) map[string]string {
	res := make(map[string]string, len(tags))
	for _, t := range tags {
		res[t.Key.Name()] = t.Value
	}
	return res
}
