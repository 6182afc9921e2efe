package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpcontext "github.com/dtroode/todo-server/internal/api/http/context"
	"github.com/dtroode/todo-server/internal/mocks"
	"github.com/dtroode/todo-server/internal/model"
	"github.com/dtroode/todo-server/internal/testutil"
)

type routerDeps struct {
	auth   *mocks.AuthService
	tokens *mocks.TokenService
	users  *mocks.UserService
	todos  *mocks.TodoService
	pinger *mocks.Pinger
}

func newRouter(t *testing.T) (http.Handler, routerDeps) {
	t.Helper()

	deps := routerDeps{
		auth:   mocks.NewAuthService(t),
		tokens: mocks.NewTokenService(t),
		users:  mocks.NewUserService(t),
		todos:  mocks.NewTodoService(t),
		pinger: mocks.NewPinger(t),
	}
	r := New(deps.auth, deps.tokens, deps.users, deps.todos, deps.pinger,
		httpcontext.NewManager(), []string{"https://app.example.com"}, testutil.MakeNoopLogger())
	return r.Register(), deps
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		h, deps := newRouter(t)
		deps.pinger.On("Ping", mock.Anything).Return(nil)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		t.Parallel()
		h, deps := newRouter(t)
		deps.pinger.On("Ping", mock.Anything).Return(assert.AnError)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/auth/logout"},
		{http.MethodGet, "/auth/current_user"},
		{http.MethodPut, "/auth/current_user"},
		{http.MethodPatch, "/auth/current_user"},
		{http.MethodDelete, "/auth/current_user"},
		{http.MethodGet, "/todos"},
		{http.MethodPost, "/todos"},
		{http.MethodGet, "/todos/1"},
		{http.MethodPut, "/todos/1"},
		{http.MethodPatch, "/todos/1"},
		{http.MethodDelete, "/todos/1"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			t.Parallel()
			h, _ := newRouter(t)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(rt.method, rt.path, nil))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRouter_AuthenticatedTodoRoute(t *testing.T) {
	t.Parallel()
	h, deps := newRouter(t)

	claims := model.AccessClaims{UserID: 7, JTI: "jti", ExpiresAt: time.Now().Add(time.Hour)}
	deps.tokens.On("Authenticate", mock.Anything, "acc").Return(claims, nil)
	deps.todos.On("GetOwned", mock.Anything, int64(7), "42").Return(model.Todo{ID: 42, UserID: 7, Task: "x"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/todos/42", nil)
	req.Header.Set("Authorization", "Bearer acc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":42`)
}

func TestRouter_PublicLogin(t *testing.T) {
	t.Parallel()
	h, deps := newRouter(t)

	deps.auth.On("Login", mock.Anything, "alice", "secret").
		Return(model.TokenPair{AccessToken: "a", RefreshToken: "r"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"alice","password":"secret"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()
	h, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/todos", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()
	h, _ := newRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
