package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/todo-server/internal/model"
)

// UserStore is a mock of model.UserStore.
type UserStore struct {
	mock.Mock
}

func NewUserStore(t testingT) *UserStore {
	m := &UserStore{}
	register(&m.Mock, t)
	return m
}

func (m *UserStore) Create(ctx context.Context, entity model.User) (model.User, error) {
	args := m.Called(ctx, entity)
	return value[model.User](args, 0), args.Error(1)
}

func (m *UserStore) Update(ctx context.Context, entity *model.User, patch model.Patch[model.User], commit bool) error {
	return m.Called(ctx, entity, patch, commit).Error(0)
}

func (m *UserStore) Save(ctx context.Context, entity *model.User) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *UserStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserStore) GetByID(ctx context.Context, id any) (model.User, error) {
	args := m.Called(ctx, id)
	return value[model.User](args, 0), args.Error(1)
}

func (m *UserStore) FindBy(ctx context.Context, filter model.Filter) ([]model.User, error) {
	args := m.Called(ctx, filter)
	return value[[]model.User](args, 0), args.Error(1)
}

func (m *UserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return value[model.User](args, 0), args.Error(1)
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return value[model.User](args, 0), args.Error(1)
}

// TodoStore is a mock of model.TodoStore.
type TodoStore struct {
	mock.Mock
}

func NewTodoStore(t testingT) *TodoStore {
	m := &TodoStore{}
	register(&m.Mock, t)
	return m
}

func (m *TodoStore) Create(ctx context.Context, entity model.Todo) (model.Todo, error) {
	args := m.Called(ctx, entity)
	return value[model.Todo](args, 0), args.Error(1)
}

func (m *TodoStore) Update(ctx context.Context, entity *model.Todo, patch model.Patch[model.Todo], commit bool) error {
	return m.Called(ctx, entity, patch, commit).Error(0)
}

func (m *TodoStore) Save(ctx context.Context, entity *model.Todo) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *TodoStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *TodoStore) GetByID(ctx context.Context, id any) (model.Todo, error) {
	args := m.Called(ctx, id)
	return value[model.Todo](args, 0), args.Error(1)
}

func (m *TodoStore) FindBy(ctx context.Context, filter model.Filter) ([]model.Todo, error) {
	args := m.Called(ctx, filter)
	return value[[]model.Todo](args, 0), args.Error(1)
}

func (m *TodoStore) ListByUser(ctx context.Context, userID int64) ([]model.Todo, error) {
	args := m.Called(ctx, userID)
	return value[[]model.Todo](args, 0), args.Error(1)
}

// RefreshTokenStore is a mock of model.RefreshTokenStore.
type RefreshTokenStore struct {
	mock.Mock
}

func NewRefreshTokenStore(t testingT) *RefreshTokenStore {
	m := &RefreshTokenStore{}
	register(&m.Mock, t)
	return m
}

func (m *RefreshTokenStore) Create(ctx context.Context, token model.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *RefreshTokenStore) GetByJTI(ctx context.Context, jti string) (model.RefreshToken, error) {
	args := m.Called(ctx, jti)
	return value[model.RefreshToken](args, 0), args.Error(1)
}

func (m *RefreshTokenStore) RevokeByJTI(ctx context.Context, jti string) error {
	return m.Called(ctx, jti).Error(0)
}

func (m *RefreshTokenStore) RevokeAllByUser(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *RefreshTokenStore) Rotate(ctx context.Context, oldJTI string, next model.RefreshToken) error {
	return m.Called(ctx, oldJTI, next).Error(0)
}

// Denylist is a mock of model.Denylist.
type Denylist struct {
	mock.Mock
}

func NewDenylist(t testingT) *Denylist {
	m := &Denylist{}
	register(&m.Mock, t)
	return m
}

func (m *Denylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return m.Called(ctx, jti, ttl).Error(0)
}

func (m *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}
