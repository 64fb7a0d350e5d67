// Package mockstore provides a hand-rolled in-memory store for tests.
//
// The mock implements the full store contract over plain maps, and every
// operation can be overridden with a function field to inject failures or
// record calls.
package mockstore

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"sort"

	"github.com/oneconcern/odtools/pkg/model"
	"github.com/oneconcern/odtools/pkg/store"
	"github.com/oneconcern/odtools/pkg/store/status"
)

// Store is an in-memory store.Store with overridable operations.
type Store struct {
	RootFunc  func(ctx context.Context) (store.Entry, error)
	CloseFunc func() error

	root   *Entry
	closed bool
}

var _ store.Store = &Store{}

// New builds an empty in-memory store.
func New() *Store {
	s := &Store{}
	s.root = newEntry(s, "")
	return s
}

// RootEntry exposes the root for direct fixture setup.
func (s *Store) RootEntry() *Entry {
	return s.root
}

func (s *Store) Root(ctx context.Context) (store.Entry, error) {
	if s.RootFunc != nil {
		return s.RootFunc(ctx)
	}
	if s.closed {
		return nil, status.ErrClosed
	}
	return s.root, nil
}

func (s *Store) Close() error {
	if s.CloseFunc != nil {
		return s.CloseFunc()
	}
	s.closed = true
	return nil
}

func (s *Store) String() string {
	return "mockstore"
}

// Entry is an in-memory store.Entry with overridable operations.
type Entry struct {
	CreateFunc        func(ctx context.Context, name string) (store.Entry, error)
	ChildFunc         func(ctx context.Context, name string) (store.Entry, error)
	ChildrenFunc      func(ctx context.Context) ([]string, error)
	DatasetsFunc      func(ctx context.Context) ([]string, error)
	PutDatasetFunc    func(ctx context.Context, name string, r io.Reader) error
	GetDatasetFunc    func(ctx context.Context, name string) (io.ReadCloser, error)
	DeleteDatasetFunc func(ctx context.Context, name string) error
	CommitFunc        func(ctx context.Context) error

	// ResolveFunc enables the PathResolver interface on this entry
	ResolveFunc func(name string) (string, error)

	store    *Store
	pth      string
	name     string
	children map[string]*Entry
	datasets map[string][]byte
	doc      *model.AttrMap
	attrs    store.Attrs
}

var _ store.Entry = &Entry{}

func newEntry(s *Store, pth string) *Entry {
	name := pth
	for i := len(pth) - 1; i >= 0; i-- {
		if pth[i] == '/' {
			name = pth[i+1:]
			break
		}
	}
	return &Entry{
		store:    s,
		pth:      pth,
		name:     name,
		children: make(map[string]*Entry),
		datasets: make(map[string][]byte),
		doc:      model.NewAttrMap(),
	}
}

func (e *Entry) Name() string {
	return e.name
}

func (e *Entry) Path() string {
	return e.pth
}

func (e *Entry) childPath(name string) string {
	if e.pth == "" {
		return name
	}
	return e.pth + "/" + name
}

func (e *Entry) Create(ctx context.Context, name string) (store.Entry, error) {
	if e.CreateFunc != nil {
		return e.CreateFunc(ctx, name)
	}
	if err := store.ValidEntryName(name); err != nil {
		return nil, err
	}
	if _, taken := e.datasets[name]; taken {
		return nil, status.ErrExists.WrapMessage("%q is a dataset, not an entry", name)
	}
	child, ok := e.children[name]
	if !ok {
		child = newEntry(e.store, e.childPath(name))
		e.children[name] = child
	}
	return child, nil
}

func (e *Entry) Child(ctx context.Context, name string) (store.Entry, error) {
	if e.ChildFunc != nil {
		return e.ChildFunc(ctx, name)
	}
	if err := store.ValidEntryName(name); err != nil {
		return nil, err
	}
	child, ok := e.children[name]
	if !ok {
		return nil, status.ErrNotFound.WrapMessage("entry %q", e.childPath(name))
	}
	return child, nil
}

func (e *Entry) Children(ctx context.Context) ([]string, error) {
	if e.ChildrenFunc != nil {
		return e.ChildrenFunc(ctx)
	}
	names := make([]string, 0, len(e.children))
	for name := range e.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (e *Entry) Datasets(ctx context.Context) ([]string, error) {
	if e.DatasetsFunc != nil {
		return e.DatasetsFunc(ctx)
	}
	names := make([]string, 0, len(e.datasets))
	for name := range e.datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (e *Entry) PutDataset(ctx context.Context, name string, r io.Reader) error {
	return e.PutDatasetMode(ctx, name, r, store.OverWrite)
}

func (e *Entry) PutDatasetMode(ctx context.Context, name string, r io.Reader, mode store.WriteMode) error {
	if e.PutDatasetFunc != nil {
		return e.PutDatasetFunc(ctx, name, r)
	}
	if err := store.ValidEntryName(name); err != nil {
		return err
	}
	if _, taken := e.children[name]; taken {
		return status.ErrExists.WrapMessage("%q is an entry, not a dataset", name)
	}
	if _, exists := e.datasets[name]; exists && mode == store.NoOverWrite {
		return status.ErrExists.WrapMessage("dataset %q", e.childPath(name))
	}
	payload, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}
	e.datasets[name] = payload
	return nil
}

func (e *Entry) GetDataset(ctx context.Context, name string) (io.ReadCloser, error) {
	if e.GetDatasetFunc != nil {
		return e.GetDatasetFunc(ctx, name)
	}
	payload, ok := e.datasets[name]
	if !ok {
		return nil, status.ErrNotFound.WrapMessage("dataset %q", e.childPath(name))
	}
	return ioutil.NopCloser(bytes.NewReader(payload)), nil
}

func (e *Entry) DeleteDataset(ctx context.Context, name string) error {
	if e.DeleteDatasetFunc != nil {
		return e.DeleteDatasetFunc(ctx, name)
	}
	delete(e.datasets, name)
	return nil
}

// ResolveDataset makes the mock a PathResolver when ResolveFunc is set.
func (e *Entry) ResolveDataset(name string) (string, error) {
	if e.ResolveFunc != nil {
		return e.ResolveFunc(name)
	}
	return "", status.ErrNotSupported.WrapMessage("mockstore resolves no filesystem paths")
}

func (e *Entry) Attrs() store.Attrs {
	if e.attrs == nil {
		e.attrs = store.NewDocAttrs(
			func() (*model.AttrMap, error) {
				return e.doc.Copy(), nil
			},
			func(ctx context.Context, doc *model.AttrMap) error {
				if e.CommitFunc != nil {
					if err := e.CommitFunc(ctx); err != nil {
						return err
					}
				}
				e.doc = doc.Copy()
				return nil
			},
		)
	}
	return e.attrs
}

// Committed exposes the committed attribute document for assertions.
func (e *Entry) Committed() *model.AttrMap {
	return e.doc.Copy()
}
