// Package logging provides the structured logger used across the planner
// core.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// config mirrors the console encoder used by the rest of the pack: ISO8601
// timestamps, colored level, short caller, no stack traces at info level.
func config() zap.Config {
	return zap.Config{
		Level:    zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

// New returns a named logger for a planner subsystem.
func New(name string) *zap.SugaredLogger {
	l, err := config().Build()
	if err != nil {
		// zap.Config.Build only fails on a malformed config; ours is
		// a constant, so this is unreachable outside of a broken build.
		panic(err)
	}
	return l.Named(name).Sugar()
}

// NewNop returns a logger that discards everything, used as the default
// when a caller does not supply one.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
