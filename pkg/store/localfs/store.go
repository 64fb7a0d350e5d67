// Package localfs persists a hierarchical attributed store on a filesystem:
// an entry is a directory, its attribute tree is one ordered JSON document
// inside it, datasets are regular files, children are subdirectories.
package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oneconcern/odtools/pkg/model"
	"github.com/oneconcern/odtools/pkg/store"
	"github.com/oneconcern/odtools/pkg/store/status"
	"github.com/segmentio/ksuid"
	"github.com/spf13/afero"
)

const (
	// attrsFileName is the reserved file holding the attribute document of
	// an entry. It never shows up among datasets.
	attrsFileName = "attributes.json"

	// stagePrefix marks in-flight documents and dataset payloads before
	// they are renamed into place.
	stagePrefix = ".stage."
)

// New creates a filesystem backed store. A nil fs defaults to
// .odtools/data under the current directory.
func New(fs afero.Fs, opts ...Option) store.Store {
	if fs == nil {
		fs = afero.NewBasePathFs(afero.NewOsFs(), filepath.Join(".odtools", "data"))
	}
	s := &localStore{
		fs:       fs,
		dirMode:  0700,
		fileMode: 0600,
	}
	for _, apply := range opts {
		apply(s)
	}
	return s
}

type localStore struct {
	fs       afero.Fs
	dirMode  os.FileMode
	fileMode os.FileMode
	closed   bool
}

func (s *localStore) Root(_ context.Context) (store.Entry, error) {
	if s.closed {
		return nil, status.ErrClosed
	}
	if err := s.fs.MkdirAll(".", s.dirMode); err != nil {
		return nil, fmt.Errorf("ensuring store root: %w", err)
	}
	return s.entry(""), nil
}

func (s *localStore) Close() error {
	s.closed = true
	return nil
}

func (s *localStore) String() string {
	const localfs = "localfs"
	switch fs := s.fs.(type) {
	case *afero.BasePathFs:
		pp, err := fs.RealPath("")
		if err != nil {
			return localfs
		}
		return localfs + "@" + pp
	default:
		return localfs
	}
}

func (s *localStore) entry(pth string) *fsEntry {
	return &fsEntry{store: s, pth: pth}
}

// reservedName guards child and dataset names against collisions with the
// backend's own files.
func reservedName(name string) error {
	if name == attrsFileName || strings.HasPrefix(name, stagePrefix) {
		return status.ErrReservedName.WrapMessage("name %q", name)
	}
	return nil
}

type fsEntry struct {
	store *localStore
	pth   string
	attrs store.Attrs
}

var (
	_ store.Entry        = &fsEntry{}
	_ store.PathResolver = &fsEntry{}
)

func (e *fsEntry) Name() string {
	if e.pth == "" {
		return ""
	}
	return filepath.Base(e.pth)
}

func (e *fsEntry) Path() string {
	return e.pth
}

func (e *fsEntry) childPath(name string) string {
	return filepath.Join(e.pth, name)
}

func (e *fsEntry) dir() string {
	if e.pth == "" {
		return "."
	}
	return e.pth
}

// guard rejects calls on entries of a closed store.
func (e *fsEntry) guard() error {
	if e.store.closed {
		return status.ErrClosed
	}
	return nil
}

func (e *fsEntry) checkName(name string) error {
	if err := e.guard(); err != nil {
		return err
	}
	if err := store.ValidEntryName(name); err != nil {
		return err
	}
	return reservedName(name)
}

func (e *fsEntry) Create(_ context.Context, name string) (store.Entry, error) {
	if err := e.checkName(name); err != nil {
		return nil, err
	}
	pth := e.childPath(name)
	if fi, err := e.store.fs.Stat(pth); err == nil && !fi.IsDir() {
		return nil, status.ErrExists.WrapMessage("%q is a dataset, not an entry", pth)
	}
	if err := e.store.fs.MkdirAll(pth, e.store.dirMode); err != nil {
		return nil, fmt.Errorf("creating entry %q: %w", pth, err)
	}
	return e.store.entry(pth), nil
}

func (e *fsEntry) Child(_ context.Context, name string) (store.Entry, error) {
	if err := e.checkName(name); err != nil {
		return nil, err
	}
	pth := e.childPath(name)
	fi, err := e.store.fs.Stat(pth)
	if err != nil || !fi.IsDir() {
		return nil, status.ErrNotFound.WrapMessage("entry %q", pth)
	}
	return e.store.entry(pth), nil
}

func (e *fsEntry) Children(_ context.Context) ([]string, error) {
	if err := e.guard(); err != nil {
		return nil, err
	}
	infos, err := afero.ReadDir(e.store.fs, e.dir())
	if err != nil {
		return nil, fmt.Errorf("listing entry %q: %w", e.pth, err)
	}
	names := make([]string, 0, len(infos))
	for _, fi := range infos {
		if fi.IsDir() && reservedName(fi.Name()) == nil {
			names = append(names, fi.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (e *fsEntry) Datasets(_ context.Context) ([]string, error) {
	if err := e.guard(); err != nil {
		return nil, err
	}
	infos, err := afero.ReadDir(e.store.fs, e.dir())
	if err != nil {
		return nil, fmt.Errorf("listing entry %q: %w", e.pth, err)
	}
	names := make([]string, 0, len(infos))
	for _, fi := range infos {
		if !fi.IsDir() && reservedName(fi.Name()) == nil {
			names = append(names, fi.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (e *fsEntry) PutDataset(ctx context.Context, name string, r io.Reader) error {
	return e.PutDatasetMode(ctx, name, r, store.OverWrite)
}

func (e *fsEntry) PutDatasetMode(_ context.Context, name string, r io.Reader, mode store.WriteMode) error {
	if err := e.checkName(name); err != nil {
		return err
	}
	pth := e.childPath(name)
	if fi, err := e.store.fs.Stat(pth); err == nil {
		if fi.IsDir() {
			return status.ErrExists.WrapMessage("%q is an entry, not a dataset", pth)
		}
		if mode == store.NoOverWrite {
			return status.ErrExists.WrapMessage("dataset %q", pth)
		}
	}
	return e.writeStaged(pth, func(w io.Writer) error {
		_, err := io.Copy(w, r)
		return err
	})
}

// writeStaged writes through a staging name, then renames into place, so
// readers never observe a partial file.
func (e *fsEntry) writeStaged(pth string, write func(io.Writer) error) error {
	staged := filepath.Join(e.dir(), stagePrefix+ksuid.New().String())
	f, err := e.store.fs.OpenFile(staged, os.O_CREATE|os.O_WRONLY|os.O_EXCL, e.store.fileMode)
	if err != nil {
		return fmt.Errorf("staging %q: %w", pth, err)
	}
	if err = write(f); err != nil {
		_ = f.Close()
		_ = e.store.fs.Remove(staged)
		return fmt.Errorf("writing %q: %w", pth, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", pth, err)
	}
	if err = e.store.fs.Rename(staged, pth); err != nil {
		_ = e.store.fs.Remove(staged)
		return fmt.Errorf("placing %q: %w", pth, err)
	}
	return nil
}

func (e *fsEntry) GetDataset(_ context.Context, name string) (io.ReadCloser, error) {
	if err := e.checkName(name); err != nil {
		return nil, err
	}
	pth := e.childPath(name)
	fi, err := e.store.fs.Stat(pth)
	if err != nil || fi.IsDir() {
		return nil, status.ErrNotFound.WrapMessage("dataset %q", pth)
	}
	return e.store.fs.Open(pth)
}

func (e *fsEntry) DeleteDataset(_ context.Context, name string) error {
	if err := e.checkName(name); err != nil {
		return err
	}
	if err := e.store.fs.Remove(e.childPath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing dataset %q: %w", name, err)
	}
	return nil
}

// ResolveDataset yields the absolute path of a dataset for stores built
// over a base path on the OS filesystem.
func (e *fsEntry) ResolveDataset(name string) (string, error) {
	if err := e.checkName(name); err != nil {
		return "", err
	}
	fs, ok := e.store.fs.(*afero.BasePathFs)
	if !ok {
		return "", status.ErrNotSupported.WrapMessage("store %s cannot resolve filesystem paths", e.store)
	}
	pth, err := fs.RealPath(e.childPath(name))
	if err != nil {
		return "", fmt.Errorf("resolving dataset %q: %w", name, err)
	}
	return filepath.Abs(pth)
}

func (e *fsEntry) Attrs() store.Attrs {
	if e.attrs == nil {
		e.attrs = store.NewDocAttrs(e.loadAttrs, e.saveAttrs)
	}
	return e.attrs
}

func (e *fsEntry) attrsPath() string {
	return filepath.Join(e.dir(), attrsFileName)
}

func (e *fsEntry) loadAttrs() (*model.AttrMap, error) {
	if err := e.guard(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(e.store.fs, e.attrsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading attributes of %q: %w", e.pth, err)
	}
	doc := model.NewAttrMap()
	if err := doc.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("decoding attributes of %q: %w", e.pth, err)
	}
	return doc, nil
}

func (e *fsEntry) saveAttrs(_ context.Context, doc *model.AttrMap) error {
	if err := e.guard(); err != nil {
		return err
	}
	data, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding attributes of %q: %w", e.pth, err)
	}
	return e.writeStaged(e.attrsPath(), func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
