package core

import (
	"context"

	"github.com/oneconcern/odtools/pkg/core/status"
	"github.com/oneconcern/odtools/pkg/model"
	"github.com/oneconcern/odtools/pkg/store"
	"go.uber.org/zap"
)

// AddSession creates a numbered session entry under a date.
func AddSession(ctx context.Context, date store.Entry, number int, opts ...Option) (store.Entry, error) {
	settings := newSettings(opts...)
	defer measure(settings, "AddSession")()

	meta, err := EntryMetadata(ctx, date)
	if err != nil {
		return nil, err
	}
	if !model.IsDate(meta) {
		return nil, status.ErrNotDate.WrapMessage("entry %q", date.Path())
	}

	child, err := inheritChild(ctx, date, model.FormatSession(number), model.SessionKey, number)
	if err != nil {
		return nil, err
	}

	incEntry(settings, model.LevelSession.String())
	settings.l.Info("session added", zap.Int("session", number), zap.String("path", child.Path()))
	return child, nil
}

// AddSessionValue creates a session entry from a user supplied session
// value, which must parse as an integer.
func AddSessionValue(ctx context.Context, date store.Entry, value string, opts ...Option) (store.Entry, error) {
	number, err := model.ParseSession(value)
	if err != nil {
		return nil, status.ErrSessionNumber.Wrap(err)
	}
	return AddSession(ctx, date, number, opts...)
}
