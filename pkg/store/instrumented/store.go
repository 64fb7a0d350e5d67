// Package instrumented decorates any store backend with opentracing spans
// and zap debug logging. Spans are children of the span carried by the
// context, when there is one.
package instrumented

import (
	"context"
	"io"
	"strings"

	"github.com/oneconcern/odtools/pkg/store"
	"github.com/oneconcern/odtools/pkg/store/status"
	opentracing "github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

// Option customizes the instrumented store.
type Option func(*iStore)

// WithTracer sets the opentracing tracer. Defaults to the global tracer.
func WithTracer(tr opentracing.Tracer) Option {
	return func(s *iStore) {
		if tr != nil {
			s.tr = tr
		}
	}
}

// WithLogger sets the logger. Defaults to a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *iStore) {
		if l != nil {
			s.log = l
		}
	}
}

// New decorates a store and all the entries it hands out.
func New(wrapped store.Store, opts ...Option) store.Store {
	s := &iStore{
		store: wrapped,
		tr:    opentracing.GlobalTracer(),
		log:   zap.NewNop(),
	}
	for _, apply := range opts {
		apply(s)
	}
	s.log = s.log.With(zap.String("store", wrapped.String()))
	return s
}

type iStore struct {
	store store.Store
	tr    opentracing.Tracer
	log   *zap.Logger
}

func (s *iStore) opName(op string) string {
	return strings.Join([]string{"store", s.store.String(), op}, ".")
}

func (s *iStore) span(ctx context.Context, op string) opentracing.Span {
	if parent := opentracing.SpanFromContext(ctx); parent != nil {
		return s.tr.StartSpan(s.opName(op), opentracing.ChildOf(parent.Context()))
	}
	return s.tr.StartSpan(s.opName(op))
}

func (s *iStore) Root(ctx context.Context) (store.Entry, error) {
	span := s.span(ctx, "Root")
	defer span.Finish()
	s.log.Debug("store root")

	root, err := s.store.Root(ctx)
	if err != nil {
		return nil, err
	}
	return s.entry(root), nil
}

func (s *iStore) Close() error {
	s.log.Debug("store close")
	return s.store.Close()
}

func (s *iStore) String() string {
	return s.store.String()
}

func (s *iStore) entry(e store.Entry) store.Entry {
	return &iEntry{entry: e, store: s, log: s.log.With(zap.String("path", e.Path()))}
}

type iEntry struct {
	entry store.Entry
	store *iStore
	log   *zap.Logger
	attrs store.Attrs
}

var _ store.Entry = &iEntry{}

func (e *iEntry) Name() string {
	return e.entry.Name()
}

func (e *iEntry) Path() string {
	return e.entry.Path()
}

func (e *iEntry) Create(ctx context.Context, name string) (store.Entry, error) {
	span := e.store.span(ctx, "Create")
	defer span.Finish()
	e.log.Debug("entry create", zap.String("name", name))

	child, err := e.entry.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return e.store.entry(child), nil
}

func (e *iEntry) Child(ctx context.Context, name string) (store.Entry, error) {
	span := e.store.span(ctx, "Child")
	defer span.Finish()
	e.log.Debug("entry child", zap.String("name", name))

	child, err := e.entry.Child(ctx, name)
	if err != nil {
		return nil, err
	}
	return e.store.entry(child), nil
}

func (e *iEntry) Children(ctx context.Context) ([]string, error) {
	span := e.store.span(ctx, "Children")
	defer span.Finish()
	e.log.Debug("entry children")

	return e.entry.Children(ctx)
}

func (e *iEntry) Datasets(ctx context.Context) ([]string, error) {
	span := e.store.span(ctx, "Datasets")
	defer span.Finish()
	e.log.Debug("entry datasets")

	return e.entry.Datasets(ctx)
}

func (e *iEntry) PutDataset(ctx context.Context, name string, r io.Reader) error {
	span := e.store.span(ctx, "PutDataset")
	defer span.Finish()
	e.log.Debug("dataset put", zap.String("name", name))

	return e.entry.PutDataset(ctx, name, r)
}

func (e *iEntry) PutDatasetMode(ctx context.Context, name string, r io.Reader, mode store.WriteMode) error {
	span := e.store.span(ctx, "PutDatasetMode")
	defer span.Finish()
	e.log.Debug("dataset put", zap.String("name", name), zap.Bool("overwrite", bool(mode)))

	return e.entry.PutDatasetMode(ctx, name, r, mode)
}

func (e *iEntry) GetDataset(ctx context.Context, name string) (io.ReadCloser, error) {
	span := e.store.span(ctx, "GetDataset")
	defer span.Finish()
	e.log.Debug("dataset get", zap.String("name", name))

	return e.entry.GetDataset(ctx, name)
}

func (e *iEntry) DeleteDataset(ctx context.Context, name string) error {
	span := e.store.span(ctx, "DeleteDataset")
	defer span.Finish()
	e.log.Debug("dataset delete", zap.String("name", name))

	return e.entry.DeleteDataset(ctx, name)
}

// ResolveDataset passes through to the wrapped entry when it resolves
// filesystem paths.
func (e *iEntry) ResolveDataset(name string) (string, error) {
	resolver, ok := e.entry.(store.PathResolver)
	if !ok {
		return "", status.ErrNotSupported.WrapMessage("store %s cannot resolve filesystem paths", e.store)
	}
	e.log.Debug("dataset resolve", zap.String("name", name))
	return resolver.ResolveDataset(name)
}

func (e *iEntry) Attrs() store.Attrs {
	if e.attrs == nil {
		e.attrs = &iAttrs{Attrs: e.entry.Attrs(), entry: e}
	}
	return e.attrs
}

// iAttrs instruments the commit boundary. Staged reads and writes stay
// in memory and are not worth a span each.
type iAttrs struct {
	store.Attrs
	entry *iEntry
}

func (a *iAttrs) Commit(ctx context.Context) error {
	span := a.entry.store.span(ctx, "Attrs.Commit")
	defer span.Finish()
	a.entry.log.Debug("attrs commit")

	return a.Attrs.Commit(ctx)
}
