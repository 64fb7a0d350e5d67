package influxdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
)

type fakeStore struct {
	batches [][]MetricPoint
	err     error
}

func (f *fakeStore) Database() string {
	return "test"
}

func (f *fakeStore) Ping(context.Context, time.Duration) error {
	return nil
}

func (f *fakeStore) Close() error {
	return nil
}

func (f *fakeStore) WriteBatch(_ context.Context, points []MetricPoint) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, points)
	return nil
}

func viewData(rows int) *view.Data {
	m := stats.Int64("test/counter", "test counter", stats.UnitDimensionless)
	data := &view.Data{
		View: &view.View{
			Name:        "test/counter",
			Description: "test counter",
			Measure:     m,
			Aggregation: view.Count(),
		},
		Start: time.Now().Add(-time.Second),
		End:   time.Now(),
	}
	for i := 0; i < rows; i++ {
		data.Rows = append(data.Rows, &view.Row{Data: &view.CountData{Value: int64(i)}})
	}
	return data
}

func TestExporterBatches(t *testing.T) {
	sink := &fakeStore{}
	e := NewExporter(
		WithStore(sink),
		WithBatchSize(3),
		WithFlushInterval(time.Hour),
		WithTags(map[string]string{"service": "odtools"}),
	)

	e.ExportView(viewData(2))
	require.Empty(t, sink.batches, "under the batch size, points stay buffered")

	e.ExportView(viewData(2))
	require.Len(t, sink.batches, 1)
	assert.Len(t, sink.batches[0], 4)

	point := sink.batches[0][0]
	assert.Equal(t, "test/counter", point.Measurement)
	assert.Equal(t, "odtools", point.Tags["service"])
	assert.Equal(t, "count", point.Tags[aggregationTag])
	assert.Equal(t, float64(0), point.Fields[valueField])

	e.ExportView(viewData(1))
	require.NoError(t, e.Close())
	require.Len(t, sink.batches, 2, "close flushes the remainder")
}

func TestExporterErrorHandler(t *testing.T) {
	var handled error
	sink := &fakeStore{err: assert.AnError}
	e := NewExporter(
		WithStore(sink),
		WithBatchSize(1),
		WithErrorHandler(func(err error) { handled = err }),
	)

	e.ExportView(viewData(1))
	require.Error(t, handled)
	assert.Equal(t, assert.AnError, handled)
}
