package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

// Auth handles registration, login and logout.
type Auth struct {
	users  *Users
	tokens *TokenService
	logger *logger.Logger
}

func NewAuth(users *Users, tokens *TokenService, logger *logger.Logger) *Auth {
	return &Auth{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

func (a *Auth) Register(ctx context.Context, params model.NewUser) (model.User, error) {
	a.logger.Debug("Auth service: starting user registration",
		"username", params.Username)

	user, err := a.users.Create(ctx, params)
	if err != nil {
		a.logger.Info("Auth service: registration failed",
			"username", params.Username,
			"error", err.Error())
		return model.User{}, err
	}

	return user, nil
}

// Login checks credentials and issues a token pair. Unknown usernames and
// wrong passwords both yield model.ErrInvalidCredentials.
func (a *Auth) Login(ctx context.Context, username, password string) (model.TokenPair, error) {
	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Info("Auth service: unknown username",
				"username", username)
			return model.TokenPair{}, model.ErrInvalidCredentials
		}
		return model.TokenPair{}, err
	}

	if !a.users.VerifyPassword(user, password) {
		a.logger.Info("Auth service: wrong password",
			"user_id", user.ID)
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	pair, err := a.tokens.Issue(ctx, user.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to issue tokens",
			"user_id", user.ID,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"user_id", user.ID)

	return pair, nil
}

// Logout revokes the refresh token, when given, and then denylists the
// access token. A refresh token that does not belong to the caller fails the
// logout before anything is revoked.
func (a *Auth) Logout(ctx context.Context, claims model.AccessClaims, refreshToken string) error {
	if refreshToken != "" {
		if err := a.tokens.Revoke(ctx, claims.UserID, refreshToken); err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
	}

	if err := a.tokens.RevokeAccess(ctx, claims); err != nil {
		return fmt.Errorf("failed to revoke access token: %w", err)
	}

	a.logger.Info("Auth service: user logged out",
		"user_id", claims.UserID)

	return nil
}

// DeleteAccount removes the user and denylists the access token used to do so.
func (a *Auth) DeleteAccount(ctx context.Context, claims model.AccessClaims) error {
	if err := a.users.Delete(ctx, claims.UserID); err != nil {
		return err
	}

	if err := a.tokens.RevokeAccess(ctx, claims); err != nil {
		a.logger.Error("Auth service: failed to revoke access token after delete",
			"user_id", claims.UserID,
			"error", err.Error())
	}

	return nil
}
