package vimpconfig

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// NewLogger builds a *zap.Logger from Logger configuration, following
// cli/options.HandleLoggingParams's convention: production encoder config,
// caller/stacktrace disabled, ISO8601 timestamps only when attached to a
// terminal (so piped/redirected output used by scripted test harnesses
// stays diff-stable).
func NewLogger(cfg Logger) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.LogLevel != "" {
		parsed, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		level = parsed
	}
	encoding := "console"
	if cfg.LogEncoding != "" {
		encoding = cfg.LogEncoding
	}

	cc := zap.NewProductionConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	cc.Encoding = encoding
	cc.Level = zap.NewAtomicLevelAt(level)
	cc.Sampling = nil
	cc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if term.IsTerminal(int(os.Stdout.Fd())) {
		cc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cc.EncoderConfig.EncodeTime = func(time.Time, zapcore.PrimitiveArrayEncoder) {}
	}
	if cfg.LogPath != "" {
		cc.OutputPaths = []string{cfg.LogPath}
	}

	return cc.Build()
}
