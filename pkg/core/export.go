package core

import (
	"context"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/oneconcern/odtools/pkg/model"
	"github.com/oneconcern/odtools/pkg/store"
	yaml "gopkg.in/yaml.v2"
)

// ExportEntry snapshots an entry subtree as a serializable document:
// attributes, dataset inventory and children, recursively. WithDepth limits
// recursion, WithDatasets(false) leaves the dataset inventory out.
//
// Only the inventory is exported, never payload bytes: use CopyEntry to
// replicate payloads.
func ExportEntry(ctx context.Context, e store.Entry, opts ...Option) (*model.EntryDocument, error) {
	settings := newSettings(opts...)
	defer measure(settings, "ExportEntry")()

	return exportEntry(ctx, e, settings, settings.depth)
}

func exportEntry(ctx context.Context, e store.Entry, settings Settings, depth int) (*model.EntryDocument, error) {
	meta, err := EntryMetadata(ctx, e)
	if err != nil {
		return nil, err
	}
	attrs, err := e.Attrs().Map()
	if err != nil {
		return nil, err
	}

	doc := &model.EntryDocument{
		Name:       e.Name(),
		Path:       e.Path(),
		Level:      model.LevelOf(meta),
		Attributes: attrs,
	}

	if settings.withDatasets {
		datasets, err := e.Datasets(ctx)
		if err != nil {
			return nil, err
		}
		for _, name := range datasets {
			info, err := datasetInfo(e.Attrs(), name)
			if err != nil {
				return nil, err
			}
			doc.Datasets = append(doc.Datasets, model.DatasetDocument{
				Name:        info.Name,
				Definition:  info.Definition,
				Unit:        info.Unit,
				Fingerprint: info.Fingerprint,
				Size:        info.Size,
			})
		}
	}

	if depth == 0 {
		return doc, nil
	}

	children, err := e.Children(ctx)
	if err != nil {
		return nil, err
	}
	for _, name := range children {
		child, err := e.Child(ctx, name)
		if err != nil {
			return nil, err
		}
		childDoc, err := exportEntry(ctx, child, settings, depth-1)
		if err != nil {
			return nil, err
		}
		doc.Children = append(doc.Children, *childDoc)
	}
	return doc, nil
}

// ExportYAML writes the export document of an entry subtree as YAML.
func ExportYAML(ctx context.Context, e store.Entry, w io.Writer, opts ...Option) error {
	doc, err := ExportEntry(ctx, e, opts...)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	if err = enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// ExportJSON writes the export document of an entry subtree as indented
// JSON.
func ExportJSON(ctx context.Context, e store.Entry, w io.Writer, opts ...Option) error {
	doc, err := ExportEntry(ctx, e, opts...)
	if err != nil {
		return err
	}
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
