package context

import (
	"context"

	"github.com/dtroode/todo-server/internal/model"
)

type claimsKey struct{}

var _ model.ContextManager = (*Manager)(nil)

// Manager stores access token claims on request contexts.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) SetClaimsToContext(ctx context.Context, claims model.AccessClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

func (m *Manager) GetClaimsFromContext(ctx context.Context) (model.AccessClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(model.AccessClaims)
	if !ok || claims.UserID <= 0 {
		return model.AccessClaims{}, false
	}
	return claims, true
}

// GetUserIDFromContext returns the authenticated user ID.
func (m *Manager) GetUserIDFromContext(ctx context.Context) (int64, bool) {
	claims, ok := m.GetClaimsFromContext(ctx)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
