package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	loadIDKey    ctxKey = "load_id"
	requestIDKey ctxKey = "request_id"
)

// WithLoadID stores the id of the current catalog load in the context.
func WithLoadID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, loadIDKey, id)
}

// LoadIDFromCtx extracts the load ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func LoadIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(loadIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// LoadIDString returns the load ID as a string, or "" if absent.
func LoadIDString(ctx context.Context) string {
	id, ok := LoadIDFromCtx(ctx)
	if !ok {
		return ""
	}
	return id.String()
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
