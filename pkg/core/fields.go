package core

import (
	"time"

	"github.com/oneconcern/odtools/pkg/metrics"
	"github.com/oneconcern/odtools/pkg/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func describeFields(e store.Entry) []zapcore.Field {
	return []zapcore.Field{
		zap.String("path", e.Path()),
	}
}

// measure records the duration of an operation when metrics are enabled
// for this call. Use as: defer measure(settings, "AddSubject")().
func measure(settings Settings, op string) func() {
	if !settings.withMetrics || !metrics.Enabled() {
		return func() {}
	}
	start := time.Now()
	return func() {
		metrics.Duration(op, time.Since(start))
	}
}

func incEntry(settings Settings, level string) {
	if settings.withMetrics && metrics.Enabled() {
		metrics.IncEntry(level)
	}
}

func incDataset(settings Settings, size int64) {
	if settings.withMetrics && metrics.Enabled() {
		metrics.IncDataset()
		metrics.DatasetBytes(size)
	}
}

func incCopy(settings Settings) {
	if settings.withMetrics && metrics.Enabled() {
		metrics.IncCopy()
	}
}
