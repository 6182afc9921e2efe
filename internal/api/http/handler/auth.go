package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

// AuthService defines registration, login and account operations.
type AuthService interface {
	Register(ctx context.Context, params model.NewUser) (model.User, error)
	Login(ctx context.Context, username, password string) (model.TokenPair, error)
	Logout(ctx context.Context, claims model.AccessClaims, refreshToken string) error
	DeleteAccount(ctx context.Context, claims model.AccessClaims) error
}

// TokenService defines the refresh token exchange.
type TokenService interface {
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
}

// UserService defines operations on the current user.
type UserService interface {
	Get(ctx context.Context, id any) (model.User, error)
	Update(ctx context.Context, user *model.User, patch model.UserPatch, commit bool) error
	ChangePassword(ctx context.Context, user *model.User, oldPassword, newPassword string) (model.User, bool, error)
}

// Auth handles the /auth endpoints.
type Auth struct {
	authService    AuthService
	tokenService   TokenService
	userService    UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuth(
	authService AuthService,
	tokenService TokenService,
	userService UserService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		authService:    authService,
		tokenService:   tokenService,
		userService:    userService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Register creates an account.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req model.NewUser
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, err, h.logger)
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login exchanges credentials for a token pair.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, err, h.logger)
		return
	}
	if req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "username and password are required")
		return
	}

	pair, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, pair)
}

// Refresh rotates a refresh token.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, err, h.logger)
		return
	}
	if req.RefreshToken == "" {
		writeMessage(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	pair, err := h.tokenService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.logger.Info("Auth handler: refresh failed", "error", err.Error())
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, pair)
}

// Logout revokes the caller's access token and the refresh token in the
// body, if any. An empty body is accepted.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	var req refreshRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			handleError(w, err, h.logger)
			return
		}
	}

	if err := h.authService.Logout(r.Context(), claims, req.RefreshToken); err != nil {
		handleError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CurrentUser returns the authenticated user.
func (h *Auth) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ChangePassword replaces the password when old_password matches.
func (h *Auth) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, err, h.logger)
		return
	}

	updated, changed, err := h.userService.ChangePassword(r.Context(), &user, req.OldPassword, req.NewPassword)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}
	if !changed {
		writeMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// UpdateCurrentUser applies a partial profile update. Passwords are changed
// through ChangePassword only.
func (h *Auth) UpdateCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	patch, err := model.DecodeUserPatch(body(w, r))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}
	if patch.Password != nil {
		writeMessage(w, http.StatusBadRequest, "password: use PUT /auth/current_user to change the password")
		return
	}

	if err := h.userService.Update(r.Context(), &user, patch, true); err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// DeleteCurrentUser removes the account with all of its todos.
func (h *Auth) DeleteCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	if err := h.authService.DeleteAccount(r.Context(), claims); err != nil {
		handleError(w, err, h.logger)
		return
	}

	h.logger.Info("Auth handler: account deleted", "user_id", claims.UserID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Auth) currentUser(w http.ResponseWriter, r *http.Request) (model.User, bool) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing authorization token")
		return model.User{}, false
	}

	user, err := h.userService.Get(r.Context(), userID)
	if err != nil {
		handleError(w, err, h.logger)
		return model.User{}, false
	}

	return user, true
}
