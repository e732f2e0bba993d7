// Package logger provides the structured, levelled logger for recipebox,
// built on log/slog.
//
// The request logger stored by middleware.Logger carries the request_id, so
// handlers and services log through WithCtx to stay correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("recipe created", "recipe_id", recipe.ID)
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/recipebox/config"
)

// L is the process-wide base logger.
var L *slog.Logger

func init() {
	L = slog.New(newHandler(os.Stdout))
	slog.SetDefault(L)
}

func level() slog.Level {
	switch config.LogLevel() {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if config.IsProduction() {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

func newHandler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: level()}
	if config.IsProduction() {
		return slog.NewJSONHandler(w, opts) // structured JSON for log aggregators
	}
	return slog.NewTextHandler(w, opts)
}

// Boot attaches the optional MongoDB sink when LOG_MONGO_URI is configured.
// The returned close func flushes pending records; it is never nil.
func Boot(ctx context.Context) (func(), error) {
	uri := config.LogMongoURI()
	if uri == "" {
		return func() {}, nil
	}

	mh, err := NewMongoHandler(ctx, uri, config.LogMongoDB(), "logs")
	if err != nil {
		return func() {}, fmt.Errorf("logger: %w", err)
	}

	L = slog.New(NewMultiHandler(newHandler(os.Stdout), mh))
	slog.SetDefault(L)
	return mh.Close, nil
}

type ctxKey struct{}

// WithCtx returns the request-scoped logger stored in ctx, or the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx. Called by the Logger middleware.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
