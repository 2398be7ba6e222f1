// Package ctxutil carries request-scoped identifiers through context.
package ctxutil

import "context"

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	roleKey      ctxKey = "role"
)

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

// WithRole stores the authenticated principal's role in the context.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey, role)
}

// RoleFromCtx extracts the role from the context. Returns an empty string
// for anonymous requests.
func RoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}

// IsAdminCtx reports whether the context principal holds the admin role.
func IsAdminCtx(ctx context.Context) bool {
	return RoleFromCtx(ctx) == "admin"
}
