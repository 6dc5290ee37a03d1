package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// FromCtx returns the global logger tagged with the request id, if any.
func FromCtx(ctx context.Context) *zap.Logger {
	return With(ctx, L())
}

// With tags an injected logger with the request id carried by ctx.
func With(ctx context.Context, l *zap.Logger) *zap.Logger {
	reqID := RequestIDFrom(ctx)
	if reqID == "" {
		return l
	}
	return l.With(zap.String("request_id", reqID))
}
