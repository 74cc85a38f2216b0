package ctxkeys

import (
	"context"

	"github.com/lumenframe/albums/internal/filter"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	CallerKey    contextKey = "caller"
	RequestIDKey contextKey = "request_id"
)

// Caller returns the identity set by the auth middleware. A request without
// one is anonymous.
func Caller(ctx context.Context) filter.Caller {
	caller, _ := ctx.Value(CallerKey).(filter.Caller)
	return caller
}

func WithCaller(ctx context.Context, caller filter.Caller) context.Context {
	return context.WithValue(ctx, CallerKey, caller)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
