package postgres

import (
	"context"

	"github.com/dtroode/todo-server/internal/dbx"
	"github.com/dtroode/todo-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

var usersTable = Table[model.User]{
	Name:      "users",
	Columns:   []string{"username", "email", "password"},
	Returning: []string{"id", "username", "email", "password", "created_at"},
	Constraints: map[string]string{
		"users_username_key": "username",
		"users_email_key":    "email",
	},
	ID: func(u *model.User) *int64 { return &u.ID },
	Values: func(u *model.User) []any {
		return []any{u.Username, u.Email, u.PasswordHash}
	},
	Scan: func(row scanner, u *model.User) error {
		return row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	},
}

type UserRepository struct {
	*CRUD[model.User]
}

func NewUserRepository(db dbx.DBTX) *UserRepository {
	return &UserRepository{
		CRUD: NewCRUD(db, usersTable),
	}
}

func (r *UserRepository) WithTx(tx dbx.DBTX) *UserRepository {
	return &UserRepository{CRUD: r.CRUD.WithTx(tx)}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.FirstBy(ctx, model.Filter{"username": username})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.FirstBy(ctx, model.Filter{"email": email})
}
