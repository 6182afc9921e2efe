package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/todo-server/internal/model"
)

// AuthService is a mock of the handler auth service.
type AuthService struct {
	mock.Mock
}

func NewAuthService(t testingT) *AuthService {
	m := &AuthService{}
	register(&m.Mock, t)
	return m
}

func (m *AuthService) Register(ctx context.Context, params model.NewUser) (model.User, error) {
	args := m.Called(ctx, params)
	return value[model.User](args, 0), args.Error(1)
}

func (m *AuthService) Login(ctx context.Context, username, password string) (model.TokenPair, error) {
	args := m.Called(ctx, username, password)
	return value[model.TokenPair](args, 0), args.Error(1)
}

func (m *AuthService) Logout(ctx context.Context, claims model.AccessClaims, refreshToken string) error {
	return m.Called(ctx, claims, refreshToken).Error(0)
}

func (m *AuthService) DeleteAccount(ctx context.Context, claims model.AccessClaims) error {
	return m.Called(ctx, claims).Error(0)
}

// TokenService is a mock of the refresh and authenticate token operations.
type TokenService struct {
	mock.Mock
}

func NewTokenService(t testingT) *TokenService {
	m := &TokenService{}
	register(&m.Mock, t)
	return m
}

func (m *TokenService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return value[model.TokenPair](args, 0), args.Error(1)
}

func (m *TokenService) Authenticate(ctx context.Context, accessToken string) (model.AccessClaims, error) {
	args := m.Called(ctx, accessToken)
	return value[model.AccessClaims](args, 0), args.Error(1)
}

// UserService is a mock of the handler user service.
type UserService struct {
	mock.Mock
}

func NewUserService(t testingT) *UserService {
	m := &UserService{}
	register(&m.Mock, t)
	return m
}

func (m *UserService) Get(ctx context.Context, id any) (model.User, error) {
	args := m.Called(ctx, id)
	return value[model.User](args, 0), args.Error(1)
}

func (m *UserService) Update(ctx context.Context, user *model.User, patch model.UserPatch, commit bool) error {
	return m.Called(ctx, user, patch, commit).Error(0)
}

func (m *UserService) ChangePassword(ctx context.Context, user *model.User, oldPassword, newPassword string) (model.User, bool, error) {
	args := m.Called(ctx, user, oldPassword, newPassword)
	return value[model.User](args, 0), args.Bool(1), args.Error(2)
}

// TodoService is a mock of the handler todo service.
type TodoService struct {
	mock.Mock
}

func NewTodoService(t testingT) *TodoService {
	m := &TodoService{}
	register(&m.Mock, t)
	return m
}

func (m *TodoService) Create(ctx context.Context, params model.NewTodo) (model.Todo, error) {
	args := m.Called(ctx, params)
	return value[model.Todo](args, 0), args.Error(1)
}

func (m *TodoService) Update(ctx context.Context, todo *model.Todo, patch model.TodoPatch, commit bool) error {
	return m.Called(ctx, todo, patch, commit).Error(0)
}

func (m *TodoService) List(ctx context.Context, userID int64) ([]model.Todo, error) {
	args := m.Called(ctx, userID)
	return value[[]model.Todo](args, 0), args.Error(1)
}

func (m *TodoService) GetOwned(ctx context.Context, userID int64, id any) (model.Todo, error) {
	args := m.Called(ctx, userID, id)
	return value[model.Todo](args, 0), args.Error(1)
}

func (m *TodoService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// Pinger is a mock of a health check dependency.
type Pinger struct {
	mock.Mock
}

func NewPinger(t testingT) *Pinger {
	m := &Pinger{}
	register(&m.Mock, t)
	return m
}

func (m *Pinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
