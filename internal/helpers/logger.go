package helpers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

const sentryFlushTimeout = 2 * time.Second

// NewNoopLogger returns a logger that discards all output.
func NewNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// LoggerConfig describes the process logger.
type LoggerConfig struct {
	Level       slog.Level
	CallerTrace bool
	SentryDSN   string
	Environment string
}

// NewLogger creates a JSON logger on w. When a Sentry DSN is configured, warnings and errors are
// also forwarded to Sentry. The returned flush function must be called before the process (or the
// Lambda invocation) ends; it is a no-op when Sentry is disabled.
func NewLogger(w io.Writer, cfg LoggerConfig) (*slog.Logger, func()) {
	stdout := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: cfg.CallerTrace,
		Level:     cfg.Level,
	})
	noop := func() {}

	if cfg.SentryDSN == "" {
		return slog.New(stdout), noop
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		logger := slog.New(stdout)
		logger.Error("failed to initialize Sentry", slog.Any("error", err))
		return logger, noop
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	return slog.New(newMultiHandler(stdout, sentryHandler)), func() {
		sentry.Flush(sentryFlushTimeout)
	}
}
