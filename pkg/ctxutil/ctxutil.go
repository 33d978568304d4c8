package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	managerIDKey ctxKey = "manager_id"
	requestIDKey ctxKey = "request_id"
)

// WithManagerID stores the acting manager's ID in the context.
func WithManagerID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, managerIDKey, id)
}

// ManagerIDFromCtx extracts the acting manager's ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func ManagerIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(managerIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
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
