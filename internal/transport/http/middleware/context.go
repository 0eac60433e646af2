package middleware

import (
	"context"

	"recognition/internal/domain/access"
	"recognition/internal/domain/auth"
)

type ctxKey string

const (
	ctxKeyRequestID ctxKey = "request_id"
	ctxKeyUser      ctxKey = "user"
	ctxKeyIdentity  ctxKey = "identity"
)

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(ctxKeyRequestID).(string); ok {
		return value
	}
	return ""
}

func GetUser(ctx context.Context) (auth.UserContext, bool) {
	user, ok := ctx.Value(ctxKeyUser).(auth.UserContext)
	return user, ok
}

// GetIdentity returns the identity resolved for the request. Without a
// signed-in user the zero Identity is returned, which no rule allows.
func GetIdentity(ctx context.Context) (access.Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity).(access.Identity)
	return id, ok
}

// WithIdentity stores an already-resolved identity on ctx.
func WithIdentity(ctx context.Context, id access.Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}
