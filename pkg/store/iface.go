package store

import (
	"context"
	"io"

	"github.com/oneconcern/odtools/pkg/model"
)

// WriteMode selects the behavior of dataset writes on existing names.
type WriteMode bool

const (
	// OverWrite replaces an existing dataset
	OverWrite WriteMode = true

	// NoOverWrite refuses to replace an existing dataset
	NoOverWrite WriteMode = false
)

// Store is a hierarchical attributed store.
type Store interface {
	// Root opens the root entry. The root always exists.
	Root(ctx context.Context) (Entry, error)

	// String identifies the backend and its location
	String() string

	// Close releases backend resources. The store is unusable afterwards.
	Close() error
}

// Entry is a node in the store hierarchy: it bears named children, named
// dataset payloads and an attribute dictionary.
type Entry interface {
	// Name of the entry, "" for the root
	Name() string

	// Path from the root, slash-delimited, "" for the root
	Path() string

	// Attrs views the attribute dictionary of this entry. The view is
	// stable: repeated calls on the same Entry observe the same staged
	// state.
	Attrs() Attrs

	// Create opens a child entry, creating it first when missing
	Create(ctx context.Context, name string) (Entry, error)

	// Child opens an existing child entry
	Child(ctx context.Context, name string) (Entry, error)

	// Children lists child names in lexical order
	Children(ctx context.Context) ([]string, error)

	// Datasets lists dataset names in lexical order
	Datasets(ctx context.Context) ([]string, error)

	// PutDataset stores a dataset payload, replacing any previous content
	PutDataset(ctx context.Context, name string, r io.Reader) error

	// PutDatasetMode stores a dataset payload honoring the write mode
	PutDatasetMode(ctx context.Context, name string, r io.Reader, mode WriteMode) error

	// GetDataset opens a dataset payload for reading
	GetDataset(ctx context.Context, name string) (io.ReadCloser, error)

	// DeleteDataset removes a dataset
	DeleteDataset(ctx context.Context, name string) error
}

// Attrs is a transactional view on the attribute dictionary of an entry.
//
// Mutations are staged in memory and become durable with Commit, which
// persists the whole dictionary atomically. Reads observe the staged state
// of the same view (read-your-writes).
type Attrs interface {
	// Get resolves a path-delimited key
	Get(key string) (model.AttrValue, error)

	// Has tells if a path-delimited key resolves
	Has(key string) (bool, error)

	// Set stages a value at a path-delimited key, creating intermediate
	// dictionaries
	Set(key string, value interface{}) error

	// Delete stages the removal of a key
	Delete(key string) error

	// Keys yields the top-level keys, in dictionary order
	Keys() ([]string, error)

	// Map yields a deep copy of the staged attribute tree
	Map() (*model.AttrMap, error)

	// Commit persists the staged attribute tree atomically
	Commit(ctx context.Context) error

	// Discard drops staged changes, reverting to the persisted state
	Discard()
}

// PathResolver is implemented by entries of stores bound to a real
// filesystem: it yields the absolute path of a dataset on disk.
type PathResolver interface {
	ResolveDataset(name string) (string, error)
}
