package core

import (
	"context"
	"sort"

	"github.com/oneconcern/odtools/pkg/core/status"
	"github.com/oneconcern/odtools/pkg/model"
	"github.com/oneconcern/odtools/pkg/store"
)

// ListSubjects enumerates the subjects of the experiment root, in name
// order.
func ListSubjects(ctx context.Context, root store.Entry, opts ...Option) (model.SubjectInfos, error) {
	out := make(model.SubjectInfos, 0, 8)
	err := ApplySubjects(ctx, root, func(info model.SubjectInfo) error {
		out = append(out, info)
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	sort.Sort(out)
	return out, nil
}

// ApplySubjects calls apply for every subject of the root, in store
// enumeration order. Iteration stops on the first callback error, which is
// returned as is.
func ApplySubjects(ctx context.Context, root store.Entry, apply func(model.SubjectInfo) error, opts ...Option) error {
	settings := newSettings(opts...)
	defer measure(settings, "ListSubjects")()

	meta, err := EntryMetadata(ctx, root)
	if err != nil {
		return err
	}
	if !model.IsRoot(meta) {
		return status.ErrNotRoot.WrapMessage("entry %q", root.Path())
	}

	children, err := root.Children(ctx)
	if err != nil {
		return err
	}
	for _, name := range children {
		if err = apply(model.SubjectInfo{Name: name}); err != nil {
			return err
		}
	}
	return nil
}

// ListDates enumerates acquisition dates. On a subject entry it lists the
// dates of that subject, on the root it lists the dates of every subject.
func ListDates(ctx context.Context, e store.Entry, opts ...Option) (model.DateInfos, error) {
	out := make(model.DateInfos, 0, 8)
	err := ApplyDates(ctx, e, func(info model.DateInfo) error {
		out = append(out, info)
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	sort.Sort(out)
	return out, nil
}

// ApplyDates calls apply for every date reachable from the entry, root or
// subject. Iteration stops on the first callback error.
func ApplyDates(ctx context.Context, e store.Entry, apply func(model.DateInfo) error, opts ...Option) error {
	settings := newSettings(opts...)
	defer measure(settings, "ListDates")()

	meta, err := EntryMetadata(ctx, e)
	if err != nil {
		return err
	}

	switch {
	case model.IsSubject(meta):
		return applySubjectDates(ctx, e, metaString(meta, model.SubjectKey), apply)
	case model.IsRoot(meta):
		return eachChild(ctx, e, func(subject store.Entry) error {
			return applySubjectDates(ctx, subject, subject.Name(), apply)
		})
	default:
		return status.ErrNotSubject.WrapMessage("entry %q", e.Path())
	}
}

func applySubjectDates(ctx context.Context, subject store.Entry, name string, apply func(model.DateInfo) error) error {
	children, err := subject.Children(ctx)
	if err != nil {
		return err
	}
	for _, date := range children {
		if err = apply(model.DateInfo{Subject: name, Date: date}); err != nil {
			return err
		}
	}
	return nil
}

// ListSessions enumerates sessions. On a date entry it lists the sessions
// of that date, on a subject all sessions of the subject, on the root all
// sessions of the experiment.
func ListSessions(ctx context.Context, e store.Entry, opts ...Option) (model.SessionInfos, error) {
	out := make(model.SessionInfos, 0, 8)
	err := ApplySessions(ctx, e, func(info model.SessionInfo) error {
		out = append(out, info)
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	sort.Sort(out)
	return out, nil
}

// ApplySessions calls apply for every session reachable from the entry,
// root, subject or date. Iteration stops on the first callback error.
func ApplySessions(ctx context.Context, e store.Entry, apply func(model.SessionInfo) error, opts ...Option) error {
	settings := newSettings(opts...)
	defer measure(settings, "ListSessions")()

	meta, err := EntryMetadata(ctx, e)
	if err != nil {
		return err
	}

	switch {
	case model.IsDate(meta):
		return applyDateSessions(ctx, e,
			metaString(meta, model.SubjectKey), metaString(meta, model.DateKey), apply)
	case model.IsSubject(meta):
		subject := metaString(meta, model.SubjectKey)
		return eachChild(ctx, e, func(date store.Entry) error {
			return applyDateSessions(ctx, date, subject, date.Name(), apply)
		})
	case model.IsRoot(meta):
		return eachChild(ctx, e, func(subject store.Entry) error {
			return eachChild(ctx, subject, func(date store.Entry) error {
				return applyDateSessions(ctx, date, subject.Name(), date.Name(), apply)
			})
		})
	default:
		return status.ErrNotDate.WrapMessage("entry %q", e.Path())
	}
}

func applyDateSessions(ctx context.Context, date store.Entry, subject, dateName string, apply func(model.SessionInfo) error) error {
	children, err := date.Children(ctx)
	if err != nil {
		return err
	}
	for _, name := range children {
		number, err := model.ParseSession(name)
		if err != nil {
			// entries under a date that do not parse as numbers are not sessions
			continue
		}
		if err = apply(model.SessionInfo{Subject: subject, Date: dateName, Number: number}); err != nil {
			return err
		}
	}
	return nil
}

// ListDatasets enumerates the datasets of a session or domain entry with
// their recorded attributes, in name order.
func ListDatasets(ctx context.Context, e store.Entry, opts ...Option) (model.DatasetInfos, error) {
	settings := newSettings(opts...)
	defer measure(settings, "ListDatasets")()

	meta, err := EntryMetadata(ctx, e)
	if err != nil {
		return nil, err
	}
	if !model.WithinSession(meta) {
		return nil, status.ErrNotSession.WrapMessage("entry %q", e.Path())
	}

	names, err := e.Datasets(ctx)
	if err != nil {
		return nil, err
	}
	out := make(model.DatasetInfos, 0, len(names))
	for _, name := range names {
		info, err := datasetInfo(e.Attrs(), name)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	sort.Sort(out)
	return out, nil
}

func eachChild(ctx context.Context, e store.Entry, apply func(store.Entry) error) error {
	children, err := e.Children(ctx)
	if err != nil {
		return err
	}
	for _, name := range children {
		child, err := e.Child(ctx, name)
		if err != nil {
			return err
		}
		if err = apply(child); err != nil {
			return err
		}
	}
	return nil
}
