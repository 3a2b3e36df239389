package logger

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const traceIDKey ctxKey = iota

// TraceHeader carries the trace id on requests and responses.
const TraceHeader = "X-Trace-ID"

// NewTraceID returns a fresh random trace id.
func NewTraceID() string {
	return uuid.NewString()
}

// WithTraceID stores the trace id in ctx.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		return ctx
	}
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext returns the trace id stored by WithTraceID, or "".
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, _ := ctx.Value(traceIDKey).(string)
	return traceID
}
