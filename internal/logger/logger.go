// Package logger builds the JSON-lines zap logger shared by the HTTP layer,
// the database bootstrap and tracing setup.
package logger

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing one JSON object per line to w.
// Timestamps are emitted under "ts" as RFC3339Nano in loc.
func New(w io.Writer, loc *time.Location, level string) *zap.Logger {
	if loc == nil {
		loc = time.UTC
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "msg",
		NameKey:        "logger",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.In(loc).Format(time.RFC3339Nano))
		},
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core, zap.AddStacktrace(zapcore.FatalLevel))
}

// NewStdout is New writing to os.Stdout.
func NewStdout(loc *time.Location, level string) *zap.Logger {
	return New(os.Stdout, loc, level)
}
