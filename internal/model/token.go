package model

import "time"

// AccessClaims is the authenticated identity carried by an access token.
type AccessClaims struct {
	UserID    int64
	JTI       string
	ExpiresAt time.Time
}

// TokenManager generates and validates access/refresh tokens.
type TokenManager interface {
	GenerateAccessToken(userID int64) (string, error)
	GenerateRefreshToken(userID int64) (token string, jti string, err error)
	ParseAccessToken(token string) (AccessClaims, error)
	ParseRefreshToken(token string) (userID int64, jti string, err error)
}

// TokenPair is returned on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
