package postgres

import (
	"context"

	"github.com/dtroode/todo-server/internal/dbx"
	"github.com/dtroode/todo-server/internal/model"
)

var _ model.TodoStore = (*TodoRepository)(nil)

var todosTable = Table[model.Todo]{
	Name:      "todos",
	Columns:   []string{"user_id", "task", "completed", "completed_at"},
	Returning: []string{"id", "user_id", "task", "completed", "completed_at", "created_at", "modified_at"},
	Touched:   []string{"modified_at"},
	Constraints: map[string]string{
		"todos_task_check":   "task",
		"todos_user_id_fkey": "user_id",
	},
	ID: func(t *model.Todo) *int64 { return &t.ID },
	Values: func(t *model.Todo) []any {
		return []any{t.UserID, t.Task, t.Completed, t.CompletedAt}
	},
	Scan: func(row scanner, t *model.Todo) error {
		return row.Scan(&t.ID, &t.UserID, &t.Task, &t.Completed, &t.CompletedAt, &t.CreatedAt, &t.ModifiedAt)
	},
}

type TodoRepository struct {
	*CRUD[model.Todo]
}

func NewTodoRepository(db dbx.DBTX) *TodoRepository {
	return &TodoRepository{
		CRUD: NewCRUD(db, todosTable),
	}
}

func (r *TodoRepository) WithTx(tx dbx.DBTX) *TodoRepository {
	return &TodoRepository{CRUD: r.CRUD.WithTx(tx)}
}

// ListByUser returns every todo owned by userID, oldest first.
func (r *TodoRepository) ListByUser(ctx context.Context, userID int64) ([]model.Todo, error) {
	return r.FindBy(ctx, model.Filter{"user_id": userID})
}
