// Package ctxutil carries request-scoped identity through context.Context.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	requestIDKey
	clientIPKey
)

func value[T any](ctx context.Context, key ctxKey) T {
	v, _ := ctx.Value(key).(T)
	return v
}

// WithUserID stores the owner id of the authenticated caller.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx reports the caller. A stored uuid.Nil counts as anonymous.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id := value[uuid.UUID](ctx, userIDKey)
	return id, id != uuid.Nil
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx returns the request id or "".
func RequestIDFromCtx(ctx context.Context) string {
	return value[string](ctx, requestIDKey)
}

// WithClientIP stores the client address without port.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

func ClientIPFromCtx(ctx context.Context) string {
	return value[string](ctx, clientIPKey)
}
