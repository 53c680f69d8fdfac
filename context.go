package holdings

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey int

const (
	contextKeyLogger contextKey = iota
)

// DefaultLogger is used for all contexts that have not set anything
// themselves.
var DefaultLogger = zerolog.Nop()

// WithLogger sets the logger for this context.
func WithLogger(ctx Context, logger zerolog.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the logger stored on the context, or DefaultLogger when
// none was set.
func GetLogger(ctx Context) zerolog.Logger {
	if logger, ok := ctx.Value(contextKeyLogger).(zerolog.Logger); ok {
		return logger
	}
	return DefaultLogger
}
