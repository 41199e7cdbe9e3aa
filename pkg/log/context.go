package log

import (
	"context"

	"github.com/rs/zerolog"
)

// ctxKey keys the request-scoped logger in a context.
type ctxKey struct{}

// WithLogger returns a child context carrying the given logger. The gin
// middleware installs a per-request child logger this way, so everything
// downstream logs with the request id attached.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// Ctx returns the request-scoped logger from the context, falling back to
// the global logger when the context carries none (startup paths, tests).
func Ctx(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return l
	}
	return L()
}
