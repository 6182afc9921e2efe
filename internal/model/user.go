package model

import (
	"context"
	"io"
	"strings"
	"time"
	"unicode/utf8"
)

// Username and email limits count characters, as the VARCHAR columns do.
const (
	MaxUsernameLen = 80
	MaxEmailLen    = 120
	// MaxPasswordLen is the bcrypt input limit in bytes.
	MaxPasswordLen = 72
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Store[User]
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}

// PasswordHasher is a one-way password hashing primitive.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(hash, plaintext string) bool
}

// User represents a registered account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u User) String() string {
	return u.Username
}

// NewUser contains the fields needed to register a user.
type NewUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks required fields and column limits.
func (n NewUser) Validate() error {
	if err := validateUsername(n.Username); err != nil {
		return err
	}
	if err := validateEmail(n.Email); err != nil {
		return err
	}
	return validatePassword(n.Password)
}

// UserPatch is a partial update of a user.
//
// Password carries plaintext from the caller and is never applied; it must be
// turned into PasswordHash before the patch reaches a store.
type UserPatch struct {
	Username     *string `json:"username,omitempty"`
	Email        *string `json:"email,omitempty"`
	Password     *string `json:"password,omitempty"`
	PasswordHash *string `json:"-"`
}

var _ Patch[User] = UserPatch{}

// Validate checks the fields set on the patch.
func (p UserPatch) Validate() error {
	if p.Username != nil {
		if err := validateUsername(*p.Username); err != nil {
			return err
		}
	}
	if p.Email != nil {
		if err := validateEmail(*p.Email); err != nil {
			return err
		}
	}
	if p.Password != nil {
		return NewValidationError("password", "must be hashed before it is stored")
	}
	if p.PasswordHash != nil && *p.PasswordHash == "" {
		return NewValidationError("password", "is required")
	}
	return nil
}

// Apply overwrites the fields set on the patch.
func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
}

// DecodeUserPatch reads a JSON field set, rejecting fields a user does not have.
func DecodeUserPatch(r io.Reader) (UserPatch, error) {
	var p UserPatch
	if err := decodeStrict(r, &p); err != nil {
		return UserPatch{}, err
	}
	return p, nil
}

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return NewValidationError("username", "is required")
	}
	if utf8.RuneCountInString(username) > MaxUsernameLen {
		return NewValidationError("username", "is too long")
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return NewValidationError("email", "is required")
	}
	if utf8.RuneCountInString(email) > MaxEmailLen {
		return NewValidationError("email", "is too long")
	}
	return nil
}

// ValidatePassword checks a plaintext password before it is hashed.
func ValidatePassword(password string) error {
	return validatePassword(password)
}

func validatePassword(password string) error {
	if password == "" {
		return NewValidationError("password", "is required")
	}
	if len(password) > MaxPasswordLen {
		return NewValidationError("password", "is too long")
	}
	return nil
}
