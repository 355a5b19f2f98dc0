package auth

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the authenticated principal all bookmark data is scoped
// to.
type Identity struct {
	AccountID uuid.UUID
	SessionID string
}

type contextKey struct{}

// WithIdentity returns a context carrying the identity. Set by the
// authentication middleware once the bearer token has been verified.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFromContext returns the identity established for this
// request, or false when none is present.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
