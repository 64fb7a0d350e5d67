// Package badgerdb persists a hierarchical attributed store in a badger
// database. Three key spaces share the DB: "e:" entry markers, "a:"
// attribute documents and "d:" dataset payloads, all keyed by the
// slash-delimited entry path.
package badgerdb

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	badger "github.com/dgraph-io/badger/v3"
	lru "github.com/hashicorp/golang-lru"
	"github.com/oneconcern/odtools/pkg/model"
	"github.com/oneconcern/odtools/pkg/store"
	"github.com/oneconcern/odtools/pkg/store/status"
)

const (
	entryPrefix   = "e:"
	attrsPrefix   = "a:"
	datasetPrefix = "d:"

	commitRetries  = 5
	commitInterval = 20 * time.Millisecond

	defaultCacheSize = 128
)

// New opens a badger backed store at dir.
func New(dir string, opts ...Option) (store.Store, error) {
	s := &bStore{
		dir:       dir,
		cacheSize: defaultCacheSize,
	}
	for _, apply := range opts {
		apply(s)
	}

	badgerOpts := badger.DefaultOptions(dir).WithLogger(nil)
	if s.inMemory {
		badgerOpts = badger.DefaultOptions("").WithLogger(nil).WithInMemory(true)
	}
	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("opening badger at %q: %w", dir, err)
	}
	s.db = db

	s.cache, err = lru.New(s.cacheSize)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

type bStore struct {
	dir       string
	db        *badger.DB
	inMemory  bool
	cacheSize int

	// cache holds decoded attribute documents by entry path
	cache *lru.Cache
}

func (s *bStore) Root(_ context.Context) (store.Entry, error) {
	if s.db.IsClosed() {
		return nil, status.ErrClosed
	}
	return s.entry(""), nil
}

func (s *bStore) Close() error {
	return s.db.Close()
}

func (s *bStore) String() string {
	if s.inMemory {
		return "badger@memory"
	}
	return "badger@" + s.dir
}

func (s *bStore) entry(pth string) *bEntry {
	return &bEntry{store: s, pth: pth}
}

func entryKey(pth string) []byte {
	return []byte(entryPrefix + pth)
}

func attrsKey(pth string) []byte {
	return []byte(attrsPrefix + pth)
}

func datasetKey(pth, name string) []byte {
	return []byte(datasetPrefix + childPath(pth, name))
}

func childPath(pth, name string) string {
	if pth == "" {
		return name
	}
	return pth + "/" + name
}

// retryCommit works around transient badger transaction conflicts.
func retryCommit(op func() error) error {
	return backoff.Retry(func() error {
		err := op()
		if err == badger.ErrConflict {
			return err
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}, backoff.WithMaxRetries(backoff.NewConstantBackOff(commitInterval), commitRetries))
}

type bEntry struct {
	store *bStore
	pth   string
	attrs store.Attrs
}

var _ store.Entry = &bEntry{}

func (e *bEntry) Name() string {
	if e.pth == "" {
		return ""
	}
	segments := strings.Split(e.pth, "/")
	return segments[len(segments)-1]
}

func (e *bEntry) Path() string {
	return e.pth
}

func (e *bEntry) has(key []byte) (bool, error) {
	err := e.store.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (e *bEntry) Create(_ context.Context, name string) (store.Entry, error) {
	if err := store.ValidEntryName(name); err != nil {
		return nil, err
	}
	pth := childPath(e.pth, name)
	if taken, err := e.has(datasetKey(e.pth, name)); err != nil {
		return nil, err
	} else if taken {
		return nil, status.ErrExists.WrapMessage("%q is a dataset, not an entry", pth)
	}
	err := retryCommit(func() error {
		return e.store.db.Update(func(txn *badger.Txn) error {
			return txn.Set(entryKey(pth), nil)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("creating entry %q: %w", pth, err)
	}
	return e.store.entry(pth), nil
}

func (e *bEntry) Child(_ context.Context, name string) (store.Entry, error) {
	if err := store.ValidEntryName(name); err != nil {
		return nil, err
	}
	pth := childPath(e.pth, name)
	exists, err := e.has(entryKey(pth))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, status.ErrNotFound.WrapMessage("entry %q", pth)
	}
	return e.store.entry(pth), nil
}

// scanNames collects the direct member names of this entry in one key space.
func (e *bEntry) scanNames(prefix string) ([]string, error) {
	scan := prefix + e.pth
	if e.pth != "" {
		scan += "/"
	}
	names := make([]string, 0, 10)
	err := e.store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(scan)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			name := string(it.Item().Key())[len(scan):]
			if name == "" || strings.Contains(name, "/") {
				continue
			}
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing entry %q: %w", e.pth, err)
	}
	sort.Strings(names)
	return names, nil
}

func (e *bEntry) Children(_ context.Context) ([]string, error) {
	return e.scanNames(entryPrefix)
}

func (e *bEntry) Datasets(_ context.Context) ([]string, error) {
	return e.scanNames(datasetPrefix)
}

func (e *bEntry) PutDataset(ctx context.Context, name string, r io.Reader) error {
	return e.PutDatasetMode(ctx, name, r, store.OverWrite)
}

func (e *bEntry) PutDatasetMode(_ context.Context, name string, r io.Reader, mode store.WriteMode) error {
	if err := store.ValidEntryName(name); err != nil {
		return err
	}
	pth := childPath(e.pth, name)
	if taken, err := e.has(entryKey(pth)); err != nil {
		return err
	} else if taken {
		return status.ErrExists.WrapMessage("%q is an entry, not a dataset", pth)
	}
	if mode == store.NoOverWrite {
		if exists, err := e.has(datasetKey(e.pth, name)); err != nil {
			return err
		} else if exists {
			return status.ErrExists.WrapMessage("dataset %q", pth)
		}
	}
	payload, err := ioutil.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading payload for %q: %w", pth, err)
	}
	err = retryCommit(func() error {
		return e.store.db.Update(func(txn *badger.Txn) error {
			return txn.Set(datasetKey(e.pth, name), payload)
		})
	})
	if err != nil {
		return fmt.Errorf("writing dataset %q: %w", pth, err)
	}
	return nil
}

func (e *bEntry) GetDataset(_ context.Context, name string) (io.ReadCloser, error) {
	if err := store.ValidEntryName(name); err != nil {
		return nil, err
	}
	var payload []byte
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(datasetKey(e.pth, name))
		if err != nil {
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, status.ErrNotFound.WrapMessage("dataset %q", childPath(e.pth, name))
	}
	if err != nil {
		return nil, fmt.Errorf("reading dataset %q: %w", name, err)
	}
	return ioutil.NopCloser(bytes.NewReader(payload)), nil
}

func (e *bEntry) DeleteDataset(_ context.Context, name string) error {
	if err := store.ValidEntryName(name); err != nil {
		return err
	}
	err := retryCommit(func() error {
		return e.store.db.Update(func(txn *badger.Txn) error {
			return txn.Delete(datasetKey(e.pth, name))
		})
	})
	if err != nil {
		return fmt.Errorf("removing dataset %q: %w", name, err)
	}
	return nil
}

func (e *bEntry) Attrs() store.Attrs {
	if e.attrs == nil {
		e.attrs = store.NewDocAttrs(e.loadAttrs, e.saveAttrs)
	}
	return e.attrs
}

func (e *bEntry) loadAttrs() (*model.AttrMap, error) {
	if cached, ok := e.store.cache.Get(e.pth); ok {
		return cached.(*model.AttrMap).Copy(), nil
	}
	var data []byte
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(attrsKey(e.pth))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading attributes of %q: %w", e.pth, err)
	}
	doc := model.NewAttrMap()
	if err := doc.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("decoding attributes of %q: %w", e.pth, err)
	}
	e.store.cache.Add(e.pth, doc.Copy())
	return doc, nil
}

func (e *bEntry) saveAttrs(_ context.Context, doc *model.AttrMap) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding attributes of %q: %w", e.pth, err)
	}
	err = retryCommit(func() error {
		return e.store.db.Update(func(txn *badger.Txn) error {
			return txn.Set(attrsKey(e.pth), data)
		})
	})
	if err != nil {
		return fmt.Errorf("committing attributes of %q: %w", e.pth, err)
	}
	e.store.cache.Add(e.pth, doc.Copy())
	return nil
}
