package core

import (
	"context"
	"time"

	"github.com/oneconcern/odtools/pkg/core/status"
	"github.com/oneconcern/odtools/pkg/model"
	"github.com/oneconcern/odtools/pkg/store"
	"go.uber.org/zap"
)

// AddDate creates an acquisition date entry under a subject. The date is an
// opaque name, conventionally YYYY-MM-DD (see AddDateStamp).
func AddDate(ctx context.Context, subject store.Entry, date string, opts ...Option) (store.Entry, error) {
	settings := newSettings(opts...)
	defer measure(settings, "AddDate")()

	if date == "" {
		return nil, status.ErrDateRequired
	}

	meta, err := EntryMetadata(ctx, subject)
	if err != nil {
		return nil, err
	}
	if !model.IsSubject(meta) {
		return nil, status.ErrNotSubject.WrapMessage("entry %q", subject.Path())
	}

	child, err := inheritChild(ctx, subject, date, model.DateKey, date)
	if err != nil {
		return nil, err
	}

	incEntry(settings, model.LevelDate.String())
	settings.l.Info("date added", zap.String("date", date), zap.String("path", child.Path()))
	return child, nil
}

// AddDateStamp creates the date entry for a point in time, named with the
// conventional YYYY-MM-DD stamp.
func AddDateStamp(ctx context.Context, subject store.Entry, t time.Time, opts ...Option) (store.Entry, error) {
	return AddDate(ctx, subject, model.DateStamp(t), opts...)
}
