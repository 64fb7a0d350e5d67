package core

import (
	"context"

	"github.com/oneconcern/odtools/pkg/core/status"
	"github.com/oneconcern/odtools/pkg/model"
	"github.com/oneconcern/odtools/pkg/store"
)

// AddAttribute stages a conventional attribute leaf at pth on the entry:
// definition, value and unit, in that order. Nothing is committed: several
// attributes may be staged on the same entry view and committed at once
// with CommitAttrs.
func AddAttribute(_ context.Context, e store.Entry, pth string, value interface{}, opts ...Option) error {
	settings := newSettings(opts...)

	if pth == "" {
		return status.ErrNameRequired.WrapMessage("attribute path")
	}

	attrs := e.Attrs()
	if err := attrs.Set(model.JoinAttrPath(pth, model.DefinitionKey), settings.definition); err != nil {
		return err
	}
	if err := attrs.Set(model.JoinAttrPath(pth, model.ValueKey), value); err != nil {
		return err
	}
	if settings.unit != "" {
		if err := attrs.Set(model.JoinAttrPath(pth, model.UnitKey), settings.unit); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAttribute stages a prebuilt attribute dictionary at pth on the
// entry, without committing.
func ApplyAttribute(_ context.Context, e store.Entry, pth string, attr *model.Attribute) error {
	if pth == "" {
		return status.ErrNameRequired.WrapMessage("attribute path")
	}
	return e.Attrs().Set(pth, attr.AsMap())
}

// GetAttribute resolves the value leaf of a conventional attribute at pth,
// falling back to the raw value at pth when no leaf is recorded there.
func GetAttribute(_ context.Context, e store.Entry, pth string) (model.AttrValue, error) {
	attrs := e.Attrs()
	if ok, err := attrs.Has(model.JoinAttrPath(pth, model.ValueKey)); err == nil && ok {
		return attrs.Get(model.JoinAttrPath(pth, model.ValueKey))
	}
	return attrs.Get(pth)
}

// CommitAttrs persists the attributes staged on the entry view.
func CommitAttrs(ctx context.Context, e store.Entry) error {
	return e.Attrs().Commit(ctx)
}
