package auth

import "context"

// TokenValidator resolves a bearer token to the principal it represents.
// Middleware depends on this interface; the returned value is stored in the
// request context via authctx.Set.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (any, error)
}
