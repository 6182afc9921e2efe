package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

// Users manages accounts. Plaintext passwords are hashed before they reach
// the store and are never persisted.
type Users struct {
	store  model.UserStore
	hasher model.PasswordHasher
	logger *logger.Logger
}

func NewUsers(store model.UserStore, hasher model.PasswordHasher, logger *logger.Logger) *Users {
	return &Users{
		store:  store,
		hasher: hasher,
		logger: logger,
	}
}

// Create registers a user. Taken usernames or emails yield model.ErrUserExists.
func (s *Users) Create(ctx context.Context, params model.NewUser) (model.User, error) {
	if err := params.Validate(); err != nil {
		return model.User{}, err
	}

	if err := s.ensureAvailable(ctx, params.Username, params.Email); err != nil {
		return model.User{}, err
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.Create(ctx, model.User{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			return model.User{}, err
		}
		s.logger.Error("User service: failed to create user",
			"username", params.Username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User service: user created",
		"user_id", user.ID,
		"username", user.Username)

	return user, nil
}

func (s *Users) ensureAvailable(ctx context.Context, username, email string) error {
	if _, err := s.store.GetByUsername(ctx, username); err == nil {
		return model.ErrUserExists
	} else if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to get user by username: %w", err)
	}

	if _, err := s.store.GetByEmail(ctx, email); err == nil {
		return model.ErrUserExists
	} else if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	return nil
}

// Update applies patch to user. A plaintext Password on the patch is
// replaced with a fresh hash first.
func (s *Users) Update(ctx context.Context, user *model.User, patch model.UserPatch, commit bool) error {
	if patch.Password != nil {
		if err := model.ValidatePassword(*patch.Password); err != nil {
			return err
		}
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		patch.Password = nil
		patch.PasswordHash = &hash
	}

	if err := s.store.Update(ctx, user, patch, commit); err != nil {
		if errors.Is(err, model.ErrValidation) || errors.Is(err, model.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// VerifyPassword reports whether candidate matches the stored hash.
func (s *Users) VerifyPassword(user model.User, candidate string) bool {
	return s.hasher.Verify(user.PasswordHash, candidate)
}

// ChangePassword sets newPassword when oldPassword verifies. A wrong
// oldPassword leaves the user unchanged and reports ok=false.
func (s *Users) ChangePassword(ctx context.Context, user *model.User, oldPassword, newPassword string) (model.User, bool, error) {
	if !s.VerifyPassword(*user, oldPassword) {
		s.logger.Info("User service: password change rejected",
			"user_id", user.ID)
		return *user, false, nil
	}

	if err := s.Update(ctx, user, model.UserPatch{Password: &newPassword}, true); err != nil {
		return *user, false, err
	}

	s.logger.Info("User service: password changed",
		"user_id", user.ID)

	return *user, true, nil
}

func (s *Users) Get(ctx context.Context, id any) (model.User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

func (s *Users) GetByUsername(ctx context.Context, username string) (model.User, error) {
	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// Delete removes the user together with their todos and refresh tokens.
func (s *Users) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User service: user deleted",
		"user_id", id)

	return nil
}
