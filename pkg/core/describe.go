package core

import (
	"context"

	"github.com/oneconcern/odtools/pkg/core/status"
	"github.com/oneconcern/odtools/pkg/model"
	"github.com/oneconcern/odtools/pkg/store"
)

// SetDescription records the experiment description on the root entry and
// commits it.
func SetDescription(ctx context.Context, root store.Entry, description string, opts ...Option) error {
	settings := newSettings(opts...)

	meta, err := EntryMetadata(ctx, root)
	if err != nil {
		return err
	}
	if !model.IsRoot(meta) {
		return status.ErrNotRoot.WrapMessage("entry %q", root.Path())
	}

	attrs := root.Attrs()
	if err = attrs.Set(model.MetadataPath(model.DescriptionKey), description); err != nil {
		return err
	}
	if err = attrs.Commit(ctx); err != nil {
		return err
	}

	settings.l.Info("description set", describeFields(root)...)
	return nil
}

// Describe summarizes an entry: its level, positioning metadata and the
// counts of its children and datasets.
func Describe(ctx context.Context, e store.Entry) (model.EntryDescription, error) {
	var desc model.EntryDescription

	meta, err := EntryMetadata(ctx, e)
	if err != nil {
		return desc, err
	}

	session, err := metaInt(meta, model.SessionKey)
	if err != nil {
		return desc, status.ErrMetadataChain.Wrap(err)
	}

	children, err := e.Children(ctx)
	if err != nil {
		return desc, err
	}
	datasets, err := e.Datasets(ctx)
	if err != nil {
		return desc, err
	}

	desc = model.EntryDescription{
		Name:        e.Name(),
		Path:        e.Path(),
		Level:       model.LevelOf(meta),
		Description: metaString(meta, model.DescriptionKey),
		Subject:     metaString(meta, model.SubjectKey),
		Date:        metaString(meta, model.DateKey),
		Session:     session,
		Domain:      metaString(meta, model.DomainKey),
		Children:    len(children),
		Datasets:    len(datasets),
	}
	return desc, nil
}
