package store

import (
	"context"

	"github.com/oneconcern/odtools/pkg/model"
	"github.com/oneconcern/odtools/pkg/store/status"
)

// NewDocAttrs builds the document based Attrs implementation shared by the
// backends: the persisted attribute tree is loaded lazily as one document,
// mutations are staged on the in-memory copy, and Commit hands the whole
// staged document back to the backend, which persists it atomically.
func NewDocAttrs(
	load func() (*model.AttrMap, error),
	save func(context.Context, *model.AttrMap) error,
) Attrs {
	return &docAttrs{load: load, save: save}
}

type docAttrs struct {
	load func() (*model.AttrMap, error)
	save func(context.Context, *model.AttrMap) error

	staged *model.AttrMap
}

func (a *docAttrs) document() (*model.AttrMap, error) {
	if a.staged != nil {
		return a.staged, nil
	}
	doc, err := a.load()
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = model.NewAttrMap()
	}
	a.staged = doc
	return a.staged, nil
}

func (a *docAttrs) Get(key string) (model.AttrValue, error) {
	doc, err := a.document()
	if err != nil {
		return nil, err
	}
	value, ok := doc.GetPath(key)
	if !ok {
		return nil, status.ErrAttrNotFound.WrapMessage("key %q", key)
	}
	return value, nil
}

func (a *docAttrs) Has(key string) (bool, error) {
	doc, err := a.document()
	if err != nil {
		return false, err
	}
	return doc.HasPath(key), nil
}

func (a *docAttrs) Set(key string, value interface{}) error {
	doc, err := a.document()
	if err != nil {
		return err
	}
	if err := doc.SetPath(key, model.NormalizeValue(value)); err != nil {
		return status.ErrKeyConflict.Wrap(err)
	}
	return nil
}

func (a *docAttrs) Delete(key string) error {
	doc, err := a.document()
	if err != nil {
		return err
	}
	doc.DeletePath(key)
	return nil
}

func (a *docAttrs) Keys() ([]string, error) {
	doc, err := a.document()
	if err != nil {
		return nil, err
	}
	return doc.Keys(), nil
}

func (a *docAttrs) Map() (*model.AttrMap, error) {
	doc, err := a.document()
	if err != nil {
		return nil, err
	}
	return doc.Copy(), nil
}

func (a *docAttrs) Commit(ctx context.Context) error {
	doc, err := a.document()
	if err != nil {
		return err
	}
	return a.save(ctx, doc)
}

func (a *docAttrs) Discard() {
	a.staged = nil
}

// ValidEntryName verifies a child or dataset name against the store naming
// rules.
func ValidEntryName(name string) error {
	if err := model.ValidateName(name); err != nil {
		return status.ErrInvalidName.Wrap(err)
	}
	return nil
}
