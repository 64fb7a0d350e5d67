package core

import (
	"context"
	"strconv"

	"github.com/oneconcern/odtools/pkg/core/status"
	"github.com/oneconcern/odtools/pkg/model"
	"github.com/oneconcern/odtools/pkg/store"
	"go.uber.org/zap"
)

// AddDomain creates a domain entry under a session, or under another domain
// for nested domains.
//
// Unlike subjects and dates, a domain inherits only the metadata of its
// parent, not the full attribute dictionary: domain attributes describe the
// domain alone. The domain definition lands twice, on the child metadata
// and on the parent under "<name>/definition", so a parent listing carries
// the definitions of its domains.
func AddDomain(ctx context.Context, parent store.Entry, name, definition string, opts ...Option) (store.Entry, error) {
	settings := newSettings(opts...)
	defer measure(settings, "AddDomain")()

	if name == "" {
		return nil, status.ErrNameRequired.WrapMessage("domain")
	}

	meta, err := EntryMetadata(ctx, parent)
	if err != nil {
		return nil, err
	}
	if !model.WithinSession(meta) {
		return nil, status.ErrNotSession.WrapMessage("entry %q", parent.Path())
	}

	child, err := parent.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	childMeta := meta.Copy()
	childMeta.Set(model.DomainKey, definition)
	attrs := child.Attrs()
	if err = attrs.Set(model.MetadataEntry, childMeta); err != nil {
		return nil, err
	}
	if err = attrs.Commit(ctx); err != nil {
		return nil, err
	}

	parentAttrs := parent.Attrs()
	if err = parentAttrs.Set(model.JoinAttrPath(name, model.DefinitionKey), definition); err != nil {
		return nil, err
	}
	if err = parentAttrs.Commit(ctx); err != nil {
		return nil, err
	}

	incEntry(settings, model.LevelDomain.String())
	settings.l.Info("domain added",
		zap.String("domain", name),
		zap.String("definition", definition),
		zap.String("path", child.Path()))
	return child, nil
}

// AddRun creates a numbered run under a domain. A run is a domain entry
// named by its number.
func AddRun(ctx context.Context, domain store.Entry, number int, definition string, opts ...Option) (store.Entry, error) {
	return AddDomain(ctx, domain, strconv.Itoa(number), definition, opts...)
}
