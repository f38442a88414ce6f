package log

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey string

const connIDKey ctxKey = "conn_id"

// ContextWithConnID stores a connection correlation ID in the context.
func ContextWithConnID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, connIDKey, id)
}

// ConnIDFromContext extracts the connection ID from context if present.
func ConnIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(connIDKey).(string); ok {
		return v
	}
	return ""
}

// WithContext enriches the supplied logger with correlation fields from ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	if ctx == nil {
		return logger
	}
	if id := ConnIDFromContext(ctx); id != "" {
		return logger.With().Str("conn_id", id).Logger()
	}
	return logger
}
