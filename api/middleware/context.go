package middleware

import (
	"context"

	"github.com/hearthside-goods/storefront-backend/pkg/auth"
)

type contextKey string

const (
	ctxIdentity    contextKey = "identity"
	ctxCartSession contextKey = "cart_session"
)

// IdentityFromContext returns the authenticated identity, or nil for
// anonymous requests.
func IdentityFromContext(ctx context.Context) *auth.Identity {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxIdentity).(*auth.Identity); ok {
		return v
	}
	return nil
}

// WithIdentity injects the resolved identity into the context.
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIdentity, identity)
}

// CartSessionFromContext returns the cart session id attached by the cart
// session middleware.
func CartSessionFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxCartSession).(string); ok {
		return v
	}
	return ""
}

// WithCartSession injects the cart session id into the context.
func WithCartSession(ctx context.Context, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCartSession, sessionID)
}
