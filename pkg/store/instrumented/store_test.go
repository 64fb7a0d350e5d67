package instrumented

import (
	"bytes"
	"context"
	"testing"

	"github.com/oneconcern/odtools/pkg/store/localfs"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInstrumentedPassThrough(t *testing.T) {
	tracer := mocktracer.New()
	s := New(localfs.New(afero.NewMemMapFs()),
		WithTracer(tracer),
		WithLogger(zap.NewNop()),
	)
	defer func() {
		require.NoError(t, s.Close())
	}()
	ctx := context.Background()

	root, err := s.Root(ctx)
	require.NoError(t, err)

	subject, err := root.Create(ctx, "mouse-A12")
	require.NoError(t, err)
	assert.Equal(t, "mouse-A12", subject.Name())

	attrs := subject.Attrs()
	require.NoError(t, attrs.Set("metadata/subject", "mouse-A12"))
	require.NoError(t, attrs.Commit(ctx))

	require.NoError(t, subject.PutDataset(ctx, "traces.csv", bytes.NewReader([]byte("1,2,3"))))
	names, err := subject.Datasets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"traces.csv"}, names)

	children, err := root.Children(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"mouse-A12"}, children)

	spans := tracer.FinishedSpans()
	require.NotEmpty(t, spans)
	names = make([]string, 0, len(spans))
	for _, span := range spans {
		names = append(names, span.OperationName)
	}
	assert.Contains(t, names, "store.localfs.Root")
	assert.Contains(t, names, "store.localfs.Create")
	assert.Contains(t, names, "store.localfs.Attrs.Commit")
	assert.Contains(t, names, "store.localfs.PutDataset")
}
