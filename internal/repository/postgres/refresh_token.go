package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/todo-server/internal/dbx"
	"github.com/dtroode/todo-server/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

type RefreshTokenRepository struct {
	db *sql.DB
}

func NewRefreshTokenRepository(db *sql.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

const refreshTokenColumns = "id, jti, user_id, token_hash, issued_at, expires_at, revoked_at, rotated_from_jti, created_at, updated_at"

const (
	insertRefreshToken = "INSERT INTO refresh_tokens (" + refreshTokenColumns + ") " +
		"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())"
	selectRefreshToken = "SELECT " + refreshTokenColumns + " FROM refresh_tokens WHERE jti = $1"
	// Revokes only touch live tokens.
	revokeRefreshToken = "UPDATE refresh_tokens SET revoked_at = NOW(), updated_at = NOW() " +
		"WHERE jti = $1 AND revoked_at IS NULL"
	revokeUserRefreshTokens = "UPDATE refresh_tokens SET revoked_at = NOW(), updated_at = NOW() " +
		"WHERE user_id = $1 AND revoked_at IS NULL"
)

func scanRefreshToken(row scanner, rt *model.RefreshToken) error {
	return row.Scan(
		&rt.ID, &rt.JTI, &rt.UserID, &rt.TokenHash, &rt.IssuedAt, &rt.ExpiresAt,
		&rt.RevokedAt, &rt.RotatedFromJTI, &rt.CreatedAt, &rt.UpdatedAt,
	)
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token model.RefreshToken) error {
	return createRefreshToken(ctx, r.db, token)
}

func createRefreshToken(ctx context.Context, db dbx.DBTX, token model.RefreshToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}

	_, err := db.ExecContext(ctx, insertRefreshToken,
		token.ID, token.JTI, token.UserID, token.TokenHash, token.IssuedAt, token.ExpiresAt,
		token.RevokedAt, token.RotatedFromJTI,
	)
	if err != nil {
		if verr := translateError(nil, err); verr != nil {
			return verr
		}
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) GetByJTI(ctx context.Context, jti string) (model.RefreshToken, error) {
	var rt model.RefreshToken
	if err := scanRefreshToken(r.db.QueryRowContext(ctx, selectRefreshToken, jti), &rt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.RefreshToken{}, model.ErrNotFound
		}
		return model.RefreshToken{}, fmt.Errorf("failed to get refresh token by jti: %w", err)
	}
	return rt, nil
}

func (r *RefreshTokenRepository) RevokeByJTI(ctx context.Context, jti string) error {
	if _, err := r.db.ExecContext(ctx, revokeRefreshToken, jti); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// RevokeAllByUser revokes every live refresh token of userID.
func (r *RefreshTokenRepository) RevokeAllByUser(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, revokeUserRefreshTokens, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens by user: %w", err)
	}
	return nil
}

// Rotate revokes oldJTI and stores next atomically. A token that was already
// revoked by a concurrent rotation yields model.ErrTokenRevoked.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, oldJTI string, next model.RefreshToken) error {
	return dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx, revokeRefreshToken, oldJTI)
		if err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
		if n == 0 {
			return model.ErrTokenRevoked
		}

		return createRefreshToken(ctx, tx, next)
	})
}
