package model

import "context"

// ContextManager carries the authenticated identity on a request context.
type ContextManager interface {
	SetClaimsToContext(ctx context.Context, claims AccessClaims) context.Context
	GetClaimsFromContext(ctx context.Context) (AccessClaims, bool)
	GetUserIDFromContext(ctx context.Context) (int64, bool)
}
