package core

import (
	"context"

	"github.com/oneconcern/odtools/pkg/core/status"
	"github.com/oneconcern/odtools/pkg/model"
	"github.com/oneconcern/odtools/pkg/store"
	"go.uber.org/zap"
)

// AddSubject creates a subject entry under the root.
//
// The subject inherits every attribute of the root, with its metadata
// extended by the subject mark. Creation is idempotent: adding an existing
// subject refreshes its inherited attributes.
func AddSubject(ctx context.Context, root store.Entry, name string, opts ...Option) (store.Entry, error) {
	settings := newSettings(opts...)
	defer measure(settings, "AddSubject")()

	if name == "" {
		return nil, status.ErrNameRequired.WrapMessage("subject")
	}

	meta, err := EntryMetadata(ctx, root)
	if err != nil {
		return nil, err
	}
	if !model.IsRoot(meta) {
		return nil, status.ErrNotRoot.WrapMessage("entry %q", root.Path())
	}

	child, err := inheritChild(ctx, root, name, model.SubjectKey, name)
	if err != nil {
		return nil, err
	}

	incEntry(settings, model.LevelSubject.String())
	settings.l.Info("subject added", zap.String("subject", name), zap.String("path", child.Path()))
	return child, nil
}

// inheritChild creates a child entry carrying a copy of all the parent
// attributes, with markKey added to its metadata, and commits it.
func inheritChild(ctx context.Context, parent store.Entry, name, markKey string, markValue interface{}) (store.Entry, error) {
	child, err := parent.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	doc, err := parent.Attrs().Map()
	if err != nil {
		return nil, err
	}

	attrs := child.Attrs()
	for _, key := range doc.Keys() {
		value, _ := doc.Get(key)
		if err = attrs.Set(key, value); err != nil {
			return nil, err
		}
	}
	if err = attrs.Set(model.MetadataPath(markKey), markValue); err != nil {
		return nil, err
	}
	if err = attrs.Commit(ctx); err != nil {
		return nil, err
	}
	return child, nil
}
