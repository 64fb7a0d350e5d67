package core

import (
	"context"
	"io"

	"github.com/oneconcern/odtools/pkg/core/status"
	"github.com/oneconcern/odtools/pkg/fingerprint"
	"github.com/oneconcern/odtools/pkg/store"
	"go.uber.org/zap"
)

// CopyAttributes deep-copies every top-level attribute of src into dst
// and commits dst. Attributes only present on dst are left in place: a
// shared key takes the src value.
func CopyAttributes(ctx context.Context, src, dst store.Entry) error {
	doc, err := src.Attrs().Map()
	if err != nil {
		return err
	}

	attrs := dst.Attrs()
	for _, key := range doc.Keys() {
		value, _ := doc.Get(key)
		if err = attrs.Set(key, value); err != nil {
			return err
		}
	}
	return attrs.Commit(ctx)
}

// CopyEntry replicates an entry subtree into dst, possibly on another
// store: attributes, dataset payloads and children, recursively.
//
// Dataset payloads are fingerprinted while they stream: a payload that no
// longer matches the fingerprint recorded on src fails the copy with
// ErrFingerprintMismatch. WithDepth limits recursion, WithDatasets(false)
// copies the tree without payloads.
func CopyEntry(ctx context.Context, src, dst store.Entry, opts ...Option) error {
	settings := newSettings(opts...)
	defer measure(settings, "CopyEntry")()

	if err := copyEntry(ctx, src, dst, settings, settings.depth); err != nil {
		return err
	}
	incCopy(settings)
	settings.l.Info("entry copied",
		zap.String("from", src.Path()),
		zap.String("to", dst.Path()))
	return nil
}

func copyEntry(ctx context.Context, src, dst store.Entry, settings Settings, depth int) error {
	if err := CopyAttributes(ctx, src, dst); err != nil {
		return err
	}

	if settings.withDatasets {
		datasets, err := src.Datasets(ctx)
		if err != nil {
			return err
		}
		for _, name := range datasets {
			if err = copyDataset(ctx, src, dst, name, settings); err != nil {
				return err
			}
		}
	}

	if depth == 0 {
		return nil
	}

	children, err := src.Children(ctx)
	if err != nil {
		return err
	}
	for _, name := range children {
		childSrc, err := src.Child(ctx, name)
		if err != nil {
			return err
		}
		childDst, err := dst.Create(ctx, name)
		if err != nil {
			return err
		}
		if err = copyEntry(ctx, childSrc, childDst, settings, depth-1); err != nil {
			return err
		}
	}
	return nil
}

func copyDataset(ctx context.Context, src, dst store.Entry, name string, settings Settings) error {
	rdr, err := src.GetDataset(ctx, name)
	if err != nil {
		return err
	}
	defer func() {
		_ = rdr.Close()
	}()

	w, err := fingerprint.New().NewWriter()
	if err != nil {
		return err
	}
	if err = dst.PutDatasetMode(ctx, name, io.TeeReader(rdr, w), settings.mode); err != nil {
		return err
	}

	info, err := datasetInfo(src.Attrs(), name)
	if err != nil {
		return err
	}
	if info.Fingerprint != "" && info.Fingerprint != w.Sum().String() {
		return status.ErrFingerprintMismatch.WrapMessage(
			"dataset %q in %q: recorded %s", name, src.Path(), info.Fingerprint)
	}

	incDataset(settings, w.Size())
	return nil
}
