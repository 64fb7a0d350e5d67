package core

import (
	"context"
	"io"

	"github.com/oneconcern/odtools/pkg/core/status"
	"github.com/oneconcern/odtools/pkg/errors"
	"github.com/oneconcern/odtools/pkg/fingerprint"
	"github.com/oneconcern/odtools/pkg/model"
	"github.com/oneconcern/odtools/pkg/store"
	storestatus "github.com/oneconcern/odtools/pkg/store/status"
	"go.uber.org/zap"
)

// AddDataset attaches a dataset payload to a session or domain entry.
//
// The payload streams into the store and is fingerprinted on the way: the
// entry records the dataset definition, its unit when given, the content
// fingerprint and the payload size under "<name>/...". Use WithMode to
// refuse overwriting an existing dataset.
func AddDataset(ctx context.Context, parent store.Entry, name string, r io.Reader, opts ...Option) (model.DatasetInfo, error) {
	var info model.DatasetInfo
	settings := newSettings(opts...)
	defer measure(settings, "AddDataset")()

	if name == "" {
		return info, status.ErrNameRequired.WrapMessage("dataset")
	}

	meta, err := EntryMetadata(ctx, parent)
	if err != nil {
		return info, err
	}
	if !model.WithinSession(meta) {
		return info, status.ErrNotSession.WrapMessage("entry %q", parent.Path())
	}

	w, err := fingerprint.New().NewWriter()
	if err != nil {
		return info, err
	}
	if err = parent.PutDatasetMode(ctx, name, io.TeeReader(r, w), settings.mode); err != nil {
		return info, err
	}
	key := w.Sum()

	info = model.DatasetInfo{
		Name:        name,
		Definition:  settings.definition,
		Unit:        settings.unit,
		Fingerprint: key.String(),
		Size:        w.Size(),
	}
	if err = stageDatasetInfo(parent.Attrs(), info); err != nil {
		return info, err
	}
	if err = parent.Attrs().Commit(ctx); err != nil {
		return info, err
	}

	incDataset(settings, info.Size)
	settings.l.Info("dataset added",
		zap.String("dataset", name),
		zap.Int64("size", info.Size),
		zap.String("path", parent.Path()))
	return info, nil
}

func stageDatasetInfo(attrs store.Attrs, info model.DatasetInfo) error {
	if err := attrs.Set(model.JoinAttrPath(info.Name, model.DefinitionKey), info.Definition); err != nil {
		return err
	}
	if info.Unit != "" {
		if err := attrs.Set(model.JoinAttrPath(info.Name, model.UnitKey), info.Unit); err != nil {
			return err
		}
	}
	if err := attrs.Set(model.JoinAttrPath(info.Name, model.FingerprintKey), info.Fingerprint); err != nil {
		return err
	}
	return attrs.Set(model.JoinAttrPath(info.Name, model.SizeKey), info.Size)
}

// GetDataset opens a dataset payload together with the descriptive
// attributes recorded for it.
func GetDataset(ctx context.Context, parent store.Entry, name string) (io.ReadCloser, model.DatasetInfo, error) {
	var info model.DatasetInfo

	rdr, err := parent.GetDataset(ctx, name)
	if err != nil {
		if errors.Is(err, storestatus.ErrNotFound) {
			return nil, info, status.ErrNotFound.WrapMessage("dataset %q in %q", name, parent.Path())
		}
		return nil, info, err
	}

	info, err = datasetInfo(parent.Attrs(), name)
	if err != nil {
		_ = rdr.Close()
		return nil, info, err
	}
	return rdr, info, nil
}

// datasetInfo collects the recorded attributes of a dataset. Missing keys
// leave zero values: attributes are descriptive, not required.
func datasetInfo(attrs store.Attrs, name string) (model.DatasetInfo, error) {
	info := model.DatasetInfo{Name: name}

	value, err := attrs.Get(name)
	if err != nil {
		if errors.Is(err, storestatus.ErrAttrNotFound) {
			return info, nil
		}
		return info, err
	}
	doc, ok := value.(*model.AttrMap)
	if !ok {
		return info, nil
	}

	info.Definition = metaString(doc, model.DefinitionKey)
	info.Unit = metaString(doc, model.UnitKey)
	info.Fingerprint = metaString(doc, model.FingerprintKey)
	size, err := metaInt(doc, model.SizeKey)
	if err != nil {
		return info, err
	}
	info.Size = int64(size)
	return info, nil
}

// DeleteDataset removes a dataset payload and the attributes recorded for
// it.
func DeleteDataset(ctx context.Context, parent store.Entry, name string, opts ...Option) error {
	settings := newSettings(opts...)
	defer measure(settings, "DeleteDataset")()

	if err := parent.DeleteDataset(ctx, name); err != nil {
		if errors.Is(err, storestatus.ErrNotFound) {
			return status.ErrNotFound.WrapMessage("dataset %q in %q", name, parent.Path())
		}
		return err
	}

	attrs := parent.Attrs()
	if err := attrs.Delete(name); err != nil {
		return err
	}
	if err := attrs.Commit(ctx); err != nil {
		return err
	}

	settings.l.Info("dataset deleted", zap.String("dataset", name), zap.String("path", parent.Path()))
	return nil
}

// AddFilepath records a file attached by reference: the file is expected as
// a dataset of the entry already, its definition is recorded, and the
// absolute on-disk path of the payload is resolved.
//
// Only stores backed by a real filesystem resolve paths: other backends
// yield ErrNotSupported from the store status package.
func AddFilepath(ctx context.Context, parent store.Entry, filename, definition string, opts ...Option) (string, error) {
	settings := newSettings(opts...)
	defer measure(settings, "AddFilepath")()

	if filename == "" {
		return "", status.ErrNameRequired.WrapMessage("file")
	}

	meta, err := EntryMetadata(ctx, parent)
	if err != nil {
		return "", err
	}
	if !model.WithinSession(meta) {
		return "", status.ErrNotSession.WrapMessage("entry %q", parent.Path())
	}

	attrs := parent.Attrs()
	if err = attrs.Set(model.JoinAttrPath(filename, model.DefinitionKey), definition); err != nil {
		return "", err
	}
	if err = attrs.Commit(ctx); err != nil {
		return "", err
	}

	resolver, ok := parent.(store.PathResolver)
	if !ok {
		return "", storestatus.ErrNotSupported.WrapMessage("store does not resolve file paths")
	}
	pth, err := resolver.ResolveDataset(filename)
	if err != nil {
		return "", err
	}

	settings.l.Info("file attached", zap.String("file", filename), zap.String("resolved", pth))
	return pth, nil
}
