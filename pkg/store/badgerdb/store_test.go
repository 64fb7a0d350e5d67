package badgerdb

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"testing"

	"github.com/oneconcern/odtools/pkg/errors"
	"github.com/oneconcern/odtools/pkg/store"
	"github.com/oneconcern/odtools/pkg/store/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func setupStore(t testing.TB) store.Store {
	s, err := New("", WithInMemory(true))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestEntryTree(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	root, err := s.Root(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", root.Name())
	assert.Equal(t, "", root.Path())

	subject, err := root.Create(ctx, "mouse-A12")
	require.NoError(t, err)
	date, err := subject.Create(ctx, "2021-06-01")
	require.NoError(t, err)
	assert.Equal(t, "2021-06-01", date.Name())
	assert.Equal(t, "mouse-A12/2021-06-01", date.Path())

	// create is idempotent
	_, err = root.Create(ctx, "mouse-A12")
	require.NoError(t, err)

	_, err = root.Create(ctx, "bad/name")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidName))

	children, err := root.Children(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"mouse-A12"}, children)

	// nested entries are not direct children
	children, err = subject.Children(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2021-06-01"}, children)

	_, err = root.Child(ctx, "mouse-B01")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))

	opened, err := root.Child(ctx, "mouse-A12")
	require.NoError(t, err)
	assert.Equal(t, "mouse-A12", opened.Path())
}

func TestDatasetRoundTrip(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	root, err := s.Root(ctx)
	require.NoError(t, err)
	session, err := root.Create(ctx, "1")
	require.NoError(t, err)

	require.NoError(t, session.PutDataset(ctx, "traces.csv", bytes.NewReader([]byte("1,2,3"))))
	require.NoError(t, session.PutDataset(ctx, "frames.bin", bytes.NewReader([]byte{0x01})))

	names, err := session.Datasets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"frames.bin", "traces.csv"}, names)

	rdr, err := session.GetDataset(ctx, "traces.csv")
	require.NoError(t, err)
	payload, err := ioutil.ReadAll(rdr)
	require.NoError(t, err)
	require.NoError(t, rdr.Close())
	assert.Equal(t, "1,2,3", string(payload))

	err = session.PutDatasetMode(ctx, "traces.csv", bytes.NewReader([]byte("4")), store.NoOverWrite)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrExists))

	require.NoError(t, session.DeleteDataset(ctx, "frames.bin"))
	_, err = session.GetDataset(ctx, "frames.bin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))

	// dataset and entry namespaces stay disjoint
	_, err = session.Create(ctx, "traces.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrExists))
	err = root.PutDataset(ctx, "1", bytes.NewReader([]byte("nope")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrExists))
}

func TestAttrsCommit(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	root, err := s.Root(ctx)
	require.NoError(t, err)
	subject, err := root.Create(ctx, "mouse-A12")
	require.NoError(t, err)

	attrs := subject.Attrs()
	require.NoError(t, attrs.Set("metadata/subject", "mouse-A12"))
	require.NoError(t, attrs.Set("cell/depth/value", 140))
	require.NoError(t, attrs.Set("cell/depth/unit", "um"))

	// read-your-writes before commit
	value, err := attrs.Get("cell/depth/value")
	require.NoError(t, err)
	assert.Equal(t, int64(140), value)

	// not visible to a fresh view before commit
	fresh, err := root.Child(ctx, "mouse-A12")
	require.NoError(t, err)
	has, err := fresh.Attrs().Has("metadata/subject")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, attrs.Commit(ctx))

	fresh, err = root.Child(ctx, "mouse-A12")
	require.NoError(t, err)
	m, err := fresh.Attrs().Map()
	require.NoError(t, err)
	assert.Equal(t, []string{"metadata", "cell"}, m.Keys())
	value, ok := m.GetPath("cell/depth/unit")
	require.True(t, ok)
	assert.Equal(t, "um", value)

	// the document cache serves repeated loads and stays consistent
	cached, err := root.Child(ctx, "mouse-A12")
	require.NoError(t, err)
	value, err = cached.Attrs().Get("cell/depth/value")
	require.NoError(t, err)
	assert.Equal(t, int64(140), value)
}

func TestStoreLifecycle(t *testing.T) {
	// glog (a transitive dependency of badger) starts a flush daemon at
	// package init; it is not a goroutine leaked by the store.
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("github.com/golang/glog.(*loggingT).flushDaemon"))

	dir, err := ioutil.TempDir("", "odtools-badger")
	require.NoError(t, err)
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	s, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, "badger@"+dir, s.String())

	ctx := context.Background()
	root, err := s.Root(ctx)
	require.NoError(t, err)
	attrs := root.Attrs()
	require.NoError(t, attrs.Set("metadata/description", "pilot"))
	require.NoError(t, attrs.Commit(ctx))
	require.NoError(t, s.Close())

	// reopen and read back
	s, err = New(dir)
	require.NoError(t, err)
	root, err = s.Root(ctx)
	require.NoError(t, err)
	value, err := root.Attrs().Get("metadata/description")
	require.NoError(t, err)
	assert.Equal(t, "pilot", value)
	require.NoError(t, s.Close())

	_, err = s.Root(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrClosed))
}
