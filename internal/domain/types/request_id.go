package types

import "context"

// Context key for request_id (unexported to avoid collisions)
type requestID struct{}

var requestIDKey = &requestID{}

// WithRequestIDContext sets request_id in context.
func WithRequestIDContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request_id stored in context, if any.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
