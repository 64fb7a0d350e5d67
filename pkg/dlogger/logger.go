// Package dlogger builds the zap loggers used across odtools.
//
// Levels are plain strings so they can travel through config files and
// flags: "info" (the default), "debug", or "none" to mute logging.
package dlogger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LogLevelInfo sets the log level to info
	LogLevelInfo = "info"

	// LogLevelDebug sets the log level to debug
	LogLevelDebug = "debug"

	// LogLevelNone disables logging entirely
	LogLevelNone = "none"
)

// GetLogger returns a production zap logger at the specified level.
// An empty level means info.
func GetLogger(logLevel string) (*zap.Logger, error) {
	switch logLevel {
	case LogLevelNone:
		return zap.NewNop(), nil
	case "":
		logLevel = LogLevelInfo
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, err
	}
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(lvl)
	return zapConfig.Build()
}

// MustGetLogger returns a zap logger with the specified level or panics
func MustGetLogger(logLevel string) *zap.Logger {
	l, err := GetLogger(logLevel)
	if err != nil {
		panic(err)
	}
	return l
}
