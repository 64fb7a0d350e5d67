package core

import (
	"github.com/oneconcern/odtools/pkg/store"
	"go.uber.org/zap"
)

// Option sets options for core operations.
type Option func(*Settings)

// Settings defines various settings for core operations.
type Settings struct {
	l           *zap.Logger
	withMetrics bool

	definition   string
	unit         string
	mode         store.WriteMode
	depth        int
	withDatasets bool
}

func defaultSettings() Settings {
	return Settings{
		l:            zap.NewNop(),
		mode:         store.OverWrite,
		depth:        -1,
		withDatasets: true,
	}
}

func newSettings(opts ...Option) Settings {
	s := defaultSettings()
	for _, apply := range opts {
		apply(&s)
	}
	return s
}

// WithLogger sets a zap logger for the operation. Defaults to a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Settings) {
		if l != nil {
			s.l = l
		}
	}
}

// WithMetrics toggles metrics collection for the operation.
func WithMetrics(enabled bool) Option {
	return func(s *Settings) {
		s.withMetrics = enabled
	}
}

// WithDefinition sets the definition recorded with a dataset or attribute.
func WithDefinition(definition string) Option {
	return func(s *Settings) {
		s.definition = definition
	}
}

// WithUnit sets the physical unit recorded with a dataset or attribute.
func WithUnit(unit string) Option {
	return func(s *Settings) {
		s.unit = unit
	}
}

// WithMode selects the dataset write mode. Defaults to OverWrite.
func WithMode(mode store.WriteMode) Option {
	return func(s *Settings) {
		s.mode = mode
	}
}

// WithDepth limits the recursion depth of copy and export operations:
// 0 covers the entry itself, 1 adds its direct children, and so on.
// Negative values do not limit recursion. Defaults to unlimited.
func WithDepth(depth int) Option {
	return func(s *Settings) {
		s.depth = depth
	}
}

// WithDatasets toggles dataset payload handling in copy and export
// operations. Defaults to true.
func WithDatasets(withDatasets bool) Option {
	return func(s *Settings) {
		s.withDatasets = withDatasets
	}
}
