package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/dtroode/todo-server/internal/api/http/context"
	"github.com/dtroode/todo-server/internal/mocks"
	"github.com/dtroode/todo-server/internal/model"
	"github.com/dtroode/todo-server/internal/testutil"
)

type authDeps struct {
	auth   *mocks.AuthService
	tokens *mocks.TokenService
	users  *mocks.UserService
}

func newAuthHandler(t *testing.T) (*Auth, authDeps) {
	t.Helper()

	deps := authDeps{
		auth:   mocks.NewAuthService(t),
		tokens: mocks.NewTokenService(t),
		users:  mocks.NewUserService(t),
	}
	h := NewAuth(deps.auth, deps.tokens, deps.users, httpcontext.NewManager(), testutil.MakeNoopLogger())
	return h, deps
}

var testUser = model.User{
	ID:           7,
	Username:     "alice",
	Email:        "alice@example.com",
	PasswordHash: "$2a$hash",
	CreatedAt:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
}

func TestAuth_Register(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()
		h, deps := newAuthHandler(t)

		params := model.NewUser{Username: "alice", Email: "alice@example.com", Password: "secret"}
		deps.auth.On("Register", mock.Anything, params).Return(testUser, nil)

		rec := httptest.NewRecorder()
		h.Register(rec, newRequest(http.MethodPost, "/auth/register",
			`{"username":"alice","email":"alice@example.com","password":"secret"}`))

		assert.Equal(t, http.StatusCreated, rec.Code)

		var got map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "alice", got["username"])
		assert.Equal(t, float64(7), got["id"])
		assert.NotContains(t, got, "password")
		assert.NotContains(t, rec.Body.String(), "$2a$hash")
	})

	t.Run("user exists", func(t *testing.T) {
		t.Parallel()
		h, deps := newAuthHandler(t)

		deps.auth.On("Register", mock.Anything, mock.Anything).Return(model.User{}, model.ErrUserExists)

		rec := httptest.NewRecorder()
		h.Register(rec, newRequest(http.MethodPost, "/auth/register",
			`{"username":"alice","email":"alice@example.com","password":"secret"}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "user already exists", decodeMessage(t, rec))
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		h, _ := newAuthHandler(t)

		rec := httptest.NewRecorder()
		h.Register(rec, newRequest(http.MethodPost, "/auth/register",
			`{"username":"alice","admin":true}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		h, _ := newAuthHandler(t)

		rec := httptest.NewRecorder()
		h.Register(rec, newRequest(http.MethodPost, "/auth/register", ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "request body is empty", decodeMessage(t, rec))
	})
}

func TestAuth_Login(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		h, deps := newAuthHandler(t)

		deps.auth.On("Login", mock.Anything, "alice", "secret").
			Return(model.TokenPair{AccessToken: "acc", RefreshToken: "ref"}, nil)

		rec := httptest.NewRecorder()
		h.Login(rec, newRequest(http.MethodPost, "/auth/login", `{"username":"alice","password":"secret"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"access_token":"acc","refresh_token":"ref"}`, rec.Body.String())
	})

	t.Run("invalid credentials", func(t *testing.T) {
		t.Parallel()
		h, deps := newAuthHandler(t)

		deps.auth.On("Login", mock.Anything, "alice", "wrong").
			Return(model.TokenPair{}, model.ErrInvalidCredentials)

		rec := httptest.NewRecorder()
		h.Login(rec, newRequest(http.MethodPost, "/auth/login", `{"username":"alice","password":"wrong"}`))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid credentials", decodeMessage(t, rec))
	})

	t.Run("missing password", func(t *testing.T) {
		t.Parallel()
		h, _ := newAuthHandler(t)

		rec := httptest.NewRecorder()
		h.Login(rec, newRequest(http.MethodPost, "/auth/login", `{"username":"alice"}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuth_Refresh(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		setup      func(d authDeps)
		wantStatus int
	}{
		{
			name: "rotated",
			body: `{"refresh_token":"ref"}`,
			setup: func(d authDeps) {
				d.tokens.On("Refresh", mock.Anything, "ref").
					Return(model.TokenPair{AccessToken: "acc2", RefreshToken: "ref2"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "revoked",
			body: `{"refresh_token":"ref"}`,
			setup: func(d authDeps) {
				d.tokens.On("Refresh", mock.Anything, "ref").Return(model.TokenPair{}, model.ErrTokenRevoked)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired",
			body: `{"refresh_token":"ref"}`,
			setup: func(d authDeps) {
				d.tokens.On("Refresh", mock.Anything, "ref").Return(model.TokenPair{}, model.ErrTokenExpired)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing token",
			body:       `{}`,
			setup:      func(authDeps) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, deps := newAuthHandler(t)
			tt.setup(deps)

			rec := httptest.NewRecorder()
			h.Refresh(rec, newRequest(http.MethodPost, "/auth/refresh", tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuth_Logout(t *testing.T) {
	t.Parallel()

	t.Run("with refresh token", func(t *testing.T) {
		t.Parallel()
		h, deps := newAuthHandler(t)

		deps.auth.On("Logout", mock.Anything, testClaims, "ref").Return(nil)

		rec := httptest.NewRecorder()
		h.Logout(rec, authorized(newRequest(http.MethodPost, "/auth/logout", `{"refresh_token":"ref"}`), testClaims))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("without body", func(t *testing.T) {
		t.Parallel()
		h, deps := newAuthHandler(t)

		deps.auth.On("Logout", mock.Anything, testClaims, "").Return(nil)

		rec := httptest.NewRecorder()
		h.Logout(rec, authorized(newRequest(http.MethodPost, "/auth/logout", ""), testClaims))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("foreign refresh token", func(t *testing.T) {
		t.Parallel()
		h, deps := newAuthHandler(t)

		deps.auth.On("Logout", mock.Anything, testClaims, "other").Return(model.ErrTokenMismatch)

		rec := httptest.NewRecorder()
		h.Logout(rec, authorized(newRequest(http.MethodPost, "/auth/logout", `{"refresh_token":"other"}`), testClaims))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()
		h, _ := newAuthHandler(t)

		rec := httptest.NewRecorder()
		h.Logout(rec, newRequest(http.MethodPost, "/auth/logout", ""))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuth_CurrentUser(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		h, deps := newAuthHandler(t)

		deps.users.On("Get", mock.Anything, int64(7)).Return(testUser, nil)

		rec := httptest.NewRecorder()
		h.CurrentUser(rec, authorized(newRequest(http.MethodGet, "/auth/current_user", ""), testClaims))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`{"id":7,"username":"alice","email":"alice@example.com","created_at":"2024-05-01T12:00:00Z"}`,
			rec.Body.String())
	})

	t.Run("deleted user", func(t *testing.T) {
		t.Parallel()
		h, deps := newAuthHandler(t)

		deps.users.On("Get", mock.Anything, int64(7)).Return(model.User{}, model.ErrNotFound)

		rec := httptest.NewRecorder()
		h.CurrentUser(rec, authorized(newRequest(http.MethodGet, "/auth/current_user", ""), testClaims))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAuth_ChangePassword(t *testing.T) {
	t.Parallel()

	t.Run("changed", func(t *testing.T) {
		t.Parallel()
		h, deps := newAuthHandler(t)

		deps.users.On("Get", mock.Anything, int64(7)).Return(testUser, nil)
		deps.users.On("ChangePassword", mock.Anything, mock.AnythingOfType("*model.User"), "old", "new").
			Return(testUser, true, nil)

		rec := httptest.NewRecorder()
		h.ChangePassword(rec, authorized(newRequest(http.MethodPut, "/auth/current_user",
			`{"old_password":"old","new_password":"new"}`), testClaims))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong old password", func(t *testing.T) {
		t.Parallel()
		h, deps := newAuthHandler(t)

		deps.users.On("Get", mock.Anything, int64(7)).Return(testUser, nil)
		deps.users.On("ChangePassword", mock.Anything, mock.Anything, "bad", "new").
			Return(model.User{}, false, nil)

		rec := httptest.NewRecorder()
		h.ChangePassword(rec, authorized(newRequest(http.MethodPut, "/auth/current_user",
			`{"old_password":"bad","new_password":"new"}`), testClaims))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid credentials", decodeMessage(t, rec))
	})

	t.Run("invalid new password", func(t *testing.T) {
		t.Parallel()
		h, deps := newAuthHandler(t)

		deps.users.On("Get", mock.Anything, int64(7)).Return(testUser, nil)
		deps.users.On("ChangePassword", mock.Anything, mock.Anything, "old", "").
			Return(model.User{}, false, model.NewValidationError("password", "is required"))

		rec := httptest.NewRecorder()
		h.ChangePassword(rec, authorized(newRequest(http.MethodPut, "/auth/current_user",
			`{"old_password":"old","new_password":""}`), testClaims))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "password: is required", decodeMessage(t, rec))
	})
}

func TestAuth_UpdateCurrentUser(t *testing.T) {
	t.Parallel()

	t.Run("email changed", func(t *testing.T) {
		t.Parallel()
		h, deps := newAuthHandler(t)

		email := "new@example.com"
		deps.users.On("Get", mock.Anything, int64(7)).Return(testUser, nil)
		deps.users.On("Update", mock.Anything, mock.AnythingOfType("*model.User"), model.UserPatch{Email: &email}, true).
			Run(func(args mock.Arguments) {
				args.Get(1).(*model.User).Email = email
			}).
			Return(nil)

		rec := httptest.NewRecorder()
		h.UpdateCurrentUser(rec, authorized(newRequest(http.MethodPatch, "/auth/current_user",
			`{"email":"new@example.com"}`), testClaims))

		assert.Equal(t, http.StatusOK, rec.Code)

		var got model.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, email, got.Email)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("password rejected", func(t *testing.T) {
		t.Parallel()
		h, deps := newAuthHandler(t)

		deps.users.On("Get", mock.Anything, int64(7)).Return(testUser, nil)

		rec := httptest.NewRecorder()
		h.UpdateCurrentUser(rec, authorized(newRequest(http.MethodPatch, "/auth/current_user",
			`{"password":"x"}`), testClaims))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		deps.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		h, deps := newAuthHandler(t)

		deps.users.On("Get", mock.Anything, int64(7)).Return(testUser, nil)

		rec := httptest.NewRecorder()
		h.UpdateCurrentUser(rec, authorized(newRequest(http.MethodPatch, "/auth/current_user",
			`{"id":99}`), testClaims))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("username taken", func(t *testing.T) {
		t.Parallel()
		h, deps := newAuthHandler(t)

		deps.users.On("Get", mock.Anything, int64(7)).Return(testUser, nil)
		deps.users.On("Update", mock.Anything, mock.Anything, mock.Anything, true).
			Return(model.NewValidationError("username", "already exists"))

		rec := httptest.NewRecorder()
		h.UpdateCurrentUser(rec, authorized(newRequest(http.MethodPatch, "/auth/current_user",
			`{"username":"bob"}`), testClaims))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "username: already exists", decodeMessage(t, rec))
	})
}

func TestAuth_DeleteCurrentUser(t *testing.T) {
	t.Parallel()

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()
		h, deps := newAuthHandler(t)

		deps.auth.On("DeleteAccount", mock.Anything, testClaims).Return(nil)

		rec := httptest.NewRecorder()
		h.DeleteCurrentUser(rec, authorized(newRequest(http.MethodDelete, "/auth/current_user", ""), testClaims))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("already gone", func(t *testing.T) {
		t.Parallel()
		h, deps := newAuthHandler(t)

		deps.auth.On("DeleteAccount", mock.Anything, testClaims).Return(model.ErrNotFound)

		rec := httptest.NewRecorder()
		h.DeleteCurrentUser(rec, authorized(newRequest(http.MethodDelete, "/auth/current_user", ""), testClaims))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
