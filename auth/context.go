package auth

import (
	"context"
)

// contextKey is a private type for context keys so values set by this
// package cannot collide with keys from other packages.
type contextKey string

const userContextKey contextKey = "auth_user"

// WithUser returns a child context carrying the resolved, authenticated
// user. The attachment is request-scoped: it is created by the
// authentication gate, consumed by the downstream gates and handlers, and
// discarded when the request ends.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext extracts the authenticated user from the context. The
// second return value is false when no authentication gate ran on this
// request.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey).(*User)
	return user, ok
}
