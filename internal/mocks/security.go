package mocks

import (
	"context"
	"net"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/todo-server/internal/model"
)

// PasswordHasher is a mock of model.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func NewPasswordHasher(t testingT) *PasswordHasher {
	m := &PasswordHasher{}
	register(&m.Mock, t)
	return m
}

func (m *PasswordHasher) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Verify(hash, plaintext string) bool {
	return m.Called(hash, plaintext).Bool(0)
}

// TokenManager is a mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func NewTokenManager(t testingT) *TokenManager {
	m := &TokenManager{}
	register(&m.Mock, t)
	return m
}

func (m *TokenManager) GenerateAccessToken(userID int64) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) GenerateRefreshToken(userID int64) (string, string, error) {
	args := m.Called(userID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *TokenManager) ParseAccessToken(token string) (model.AccessClaims, error) {
	args := m.Called(token)
	return value[model.AccessClaims](args, 0), args.Error(1)
}

func (m *TokenManager) ParseRefreshToken(token string) (int64, string, error) {
	args := m.Called(token)
	return value[int64](args, 0), args.String(1), args.Error(2)
}

// ContextManager is a mock of model.ContextManager.
type ContextManager struct {
	mock.Mock
}

func NewContextManager(t testingT) *ContextManager {
	m := &ContextManager{}
	register(&m.Mock, t)
	return m
}

func (m *ContextManager) SetClaimsToContext(ctx context.Context, claims model.AccessClaims) context.Context {
	return value[context.Context](m.Called(ctx, claims), 0)
}

func (m *ContextManager) GetClaimsFromContext(ctx context.Context) (model.AccessClaims, bool) {
	args := m.Called(ctx)
	return value[model.AccessClaims](args, 0), args.Bool(1)
}

func (m *ContextManager) GetUserIDFromContext(ctx context.Context) (int64, bool) {
	args := m.Called(ctx)
	return value[int64](args, 0), args.Bool(1)
}

// SecurityLayer is a mock of model.SecurityLayer.
type SecurityLayer struct {
	mock.Mock
}

func NewSecurityLayer(t testingT) *SecurityLayer {
	m := &SecurityLayer{}
	register(&m.Mock, t)
	return m
}

func (m *SecurityLayer) Listen(network, address string) (net.Listener, error) {
	args := m.Called(network, address)
	return value[net.Listener](args, 0), args.Error(1)
}
