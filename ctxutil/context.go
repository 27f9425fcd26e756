package ctxutil

import (
	"context"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

type contextKey string

// TraceIDKey context key for the request trace id
const TraceIDKey contextKey = "trace_id"

const (
	traceAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	traceLength   = 22
)

// NewTraceID generates a new trace id
func NewTraceID() string {
	return gonanoid.MustGenerate(traceAlphabet, traceLength)
}

// GetTraceID gets the trace id from the context
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// SetTraceID sets a trace id to the context
func SetTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// EnsureTraceID ensures that a trace id exists in the context
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID := GetTraceID(ctx); traceID != "" {
		return ctx, traceID
	}
	traceID := NewTraceID()
	return SetTraceID(ctx, traceID), traceID
}
