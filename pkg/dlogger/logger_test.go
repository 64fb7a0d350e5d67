package dlogger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestGetLogger(t *testing.T) {
	for _, level := range []string{LogLevelInfo, LogLevelDebug, LogLevelNone, ""} {
		l, err := GetLogger(level)
		require.NoError(t, err)
		require.NotNil(t, l)
	}

	l, err := GetLogger(LogLevelDebug)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = GetLogger(LogLevelInfo)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = GetLogger("not-a-level")
	require.Error(t, err)
}

func TestMustGetLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = MustGetLogger(LogLevelNone)
	})
	assert.Panics(t, func() {
		_ = MustGetLogger("not-a-level")
	})
}
