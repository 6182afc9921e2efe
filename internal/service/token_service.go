package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

// TokenService provides high-level operations for issuing, refreshing,
// and revoking tokens. It composes the TokenManager, RefreshTokenStore
// and the access token Denylist.
type TokenService struct {
	manager    model.TokenManager
	store      model.RefreshTokenStore
	denylist   model.Denylist
	refreshTTL time.Duration
	logger     *logger.Logger
	now        func() time.Time
}

// NewTokenService creates a TokenService. refreshTTL must match the token
// manager's; it is only used for the persisted expiry.
func NewTokenService(
	manager model.TokenManager,
	store model.RefreshTokenStore,
	denylist model.Denylist,
	refreshTTL time.Duration,
	logger *logger.Logger,
) *TokenService {
	return &TokenService{
		manager:    manager,
		store:      store,
		denylist:   denylist,
		refreshTTL: refreshTTL,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *TokenService) Issue(ctx context.Context, userID int64) (model.TokenPair, error) {
	pair, rt, err := s.generate(userID, nil)
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := s.store.Create(ctx, rt); err != nil {
		return model.TokenPair{}, fmt.Errorf("persist refresh: %w", err)
	}

	return pair, nil
}

// Refresh validates the presented refresh token and exchanges it for a new
// pair. The old token is revoked in the same transaction that stores the new one.
func (s *TokenService) Refresh(ctx context.Context, presentedRefresh string) (model.TokenPair, error) {
	userID, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return model.TokenPair{}, err
	}

	rt, err := s.store.GetByJTI(ctx, jti)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.TokenPair{}, model.ErrTokenInvalid
		}
		return model.TokenPair{}, fmt.Errorf("get refresh: %w", err)
	}

	if err := validateRecord(rt, hashRefresh(presentedRefresh), s.now()); err != nil {
		s.logger.Info("Token service: refresh rejected",
			"user_id", userID,
			"jti", jti,
			"reason", err.Error())
		return model.TokenPair{}, err
	}
	if rt.UserID != userID {
		return model.TokenPair{}, model.ErrTokenMismatch
	}

	rotatedFrom := rt.JTI
	pair, next, err := s.generate(userID, &rotatedFrom)
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := s.store.Rotate(ctx, jti, next); err != nil {
		if errors.Is(err, model.ErrTokenRevoked) {
			return model.TokenPair{}, err
		}
		return model.TokenPair{}, fmt.Errorf("rotate refresh: %w", err)
	}

	return pair, nil
}

// Revoke revokes a refresh token issued to userID. It is a no-op for tokens
// already revoked.
func (s *TokenService) Revoke(ctx context.Context, userID int64, presentedRefresh string) error {
	owner, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return err
	}
	if owner != userID {
		return model.ErrTokenMismatch
	}
	return s.store.RevokeByJTI(ctx, jti)
}

func (s *TokenService) RevokeAllForUser(ctx context.Context, userID int64) error {
	return s.store.RevokeAllByUser(ctx, userID)
}

// RevokeAccess denylists an access token for the rest of its lifetime.
func (s *TokenService) RevokeAccess(ctx context.Context, claims model.AccessClaims) error {
	if claims.JTI == "" {
		return model.ErrTokenInvalid
	}
	return s.denylist.Revoke(ctx, claims.JTI, claims.ExpiresAt.Sub(s.now()))
}

// Authenticate parses an access token and rejects denylisted ones.
func (s *TokenService) Authenticate(ctx context.Context, accessToken string) (model.AccessClaims, error) {
	claims, err := s.manager.ParseAccessToken(accessToken)
	if err != nil {
		return model.AccessClaims{}, err
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.JTI)
	if err != nil {
		return model.AccessClaims{}, fmt.Errorf("check denylist: %w", err)
	}
	if revoked {
		return model.AccessClaims{}, model.ErrTokenRevoked
	}

	return claims, nil
}

func (s *TokenService) generate(userID int64, rotatedFrom *string) (model.TokenPair, model.RefreshToken, error) {
	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return model.TokenPair{}, model.RefreshToken{}, fmt.Errorf("issue access: %w", err)
	}

	refresh, jti, err := s.manager.GenerateRefreshToken(userID)
	if err != nil {
		return model.TokenPair{}, model.RefreshToken{}, fmt.Errorf("issue refresh: %w", err)
	}

	now := s.now()
	rt := model.RefreshToken{
		ID:             uuid.New(),
		JTI:            jti,
		UserID:         userID,
		TokenHash:      hashRefresh(refresh),
		IssuedAt:       now,
		ExpiresAt:      now.Add(s.refreshTTL),
		RotatedFromJTI: rotatedFrom,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, rt, nil
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func validateRecord(rt model.RefreshToken, presentedHash []byte, now time.Time) error {
	if rt.RevokedAt != nil {
		return model.ErrTokenRevoked
	}
	if now.After(rt.ExpiresAt) {
		return model.ErrTokenExpired
	}
	if subtle.ConstantTimeCompare(rt.TokenHash, presentedHash) != 1 {
		return model.ErrTokenMismatch
	}
	return nil
}
