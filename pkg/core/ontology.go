package core

import (
	"context"
	"fmt"

	"github.com/oneconcern/odtools/pkg/core/status"
	"github.com/oneconcern/odtools/pkg/errors"
	"github.com/oneconcern/odtools/pkg/model"
	"github.com/oneconcern/odtools/pkg/store"
	storestatus "github.com/oneconcern/odtools/pkg/store/status"
)

// EntryMetadata resolves the metadata dictionary of an entry. An entry
// without a metadata attribute yields an empty dictionary: such an entry
// classifies as the root.
func EntryMetadata(_ context.Context, e store.Entry) (*model.AttrMap, error) {
	value, err := e.Attrs().Get(model.MetadataEntry)
	if err != nil {
		if errors.Is(err, storestatus.ErrAttrNotFound) {
			return model.NewAttrMap(), nil
		}
		return nil, err
	}
	meta, ok := value.(*model.AttrMap)
	if !ok {
		return nil, status.ErrMetadataChain.WrapMessage(
			"entry %q: %q attribute is not a dictionary", e.Path(), model.MetadataEntry)
	}
	if err := model.ValidateChain(meta); err != nil {
		return nil, status.ErrMetadataChain.Wrap(err)
	}
	return meta, nil
}

// LevelOf situates an entry in the hierarchy from its metadata.
func LevelOf(ctx context.Context, e store.Entry) (model.Level, error) {
	meta, err := EntryMetadata(ctx, e)
	if err != nil {
		return "", err
	}
	return model.LevelOf(meta), nil
}

// IsRoot tells if the entry is the experiment root.
func IsRoot(ctx context.Context, e store.Entry) (bool, error) {
	meta, err := EntryMetadata(ctx, e)
	if err != nil {
		return false, err
	}
	return model.IsRoot(meta), nil
}

// IsSubject tells if the entry is a subject.
func IsSubject(ctx context.Context, e store.Entry) (bool, error) {
	meta, err := EntryMetadata(ctx, e)
	if err != nil {
		return false, err
	}
	return model.IsSubject(meta), nil
}

// IsDate tells if the entry is an acquisition date.
func IsDate(ctx context.Context, e store.Entry) (bool, error) {
	meta, err := EntryMetadata(ctx, e)
	if err != nil {
		return false, err
	}
	return model.IsDate(meta), nil
}

// IsSession tells if the entry is a session.
func IsSession(ctx context.Context, e store.Entry) (bool, error) {
	meta, err := EntryMetadata(ctx, e)
	if err != nil {
		return false, err
	}
	return model.IsSession(meta), nil
}

// IsDomain tells if the entry is a domain or run.
func IsDomain(ctx context.Context, e store.Entry) (bool, error) {
	meta, err := EntryMetadata(ctx, e)
	if err != nil {
		return false, err
	}
	return model.IsDomain(meta), nil
}

// WithinSession tells if the entry sits at or below a session.
func WithinSession(ctx context.Context, e store.Entry) (bool, error) {
	meta, err := EntryMetadata(ctx, e)
	if err != nil {
		return false, err
	}
	return model.WithinSession(meta), nil
}

// metaString resolves a string-valued metadata key, "" when absent.
func metaString(meta *model.AttrMap, key string) string {
	value, ok := meta.Get(key)
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return s
}

// metaInt resolves an integer-valued metadata key, 0 when absent.
func metaInt(meta *model.AttrMap, key string) (int, error) {
	value, ok := meta.Get(key)
	if !ok {
		return 0, nil
	}
	switch n := value.(type) {
	case int64:
		return int(n), nil
	case int:
		return n, nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("metadata key %q holds %T, not an integer", key, value)
	}
}
