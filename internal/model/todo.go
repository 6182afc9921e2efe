package model

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTaskLen is the task column limit in characters.
const MaxTaskLen = 80

// TodoStore defines persistence operations for todos.
type TodoStore interface {
	Store[Todo]
	ListByUser(ctx context.Context, userID int64) ([]Todo, error)
}

// Todo is a task owned by a user.
type Todo struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Task        string     `json:"task"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	ModifiedAt  time.Time  `json:"modified_at"`
}

// NewTodo contains the fields needed to create a todo.
type NewTodo struct {
	UserID    int64  `json:"-"`
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

// Validate checks required fields and column limits.
func (n NewTodo) Validate() error {
	if n.UserID <= 0 {
		return NewValidationError("user_id", "is required")
	}
	return validateTask(n.Task)
}

// TodoPatch is a partial update of a todo. CompletedAt is written verbatim
// when present; the owner cannot be changed.
type TodoPatch struct {
	Task        *string    `json:"task,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

var _ Patch[Todo] = TodoPatch{}

// Validate checks the fields set on the patch.
func (p TodoPatch) Validate() error {
	if p.Task != nil {
		return validateTask(*p.Task)
	}
	return nil
}

// Apply overwrites the fields set on the patch.
func (p TodoPatch) Apply(t *Todo) {
	if p.Task != nil {
		t.Task = *p.Task
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.CompletedAt != nil {
		at := *p.CompletedAt
		t.CompletedAt = &at
	}
}

// DecodeTodoPatch reads a JSON field set, rejecting fields a todo does not have.
func DecodeTodoPatch(r io.Reader) (TodoPatch, error) {
	var p TodoPatch
	if err := decodeStrict(r, &p); err != nil {
		return TodoPatch{}, err
	}
	return p, nil
}

// DecodeNewTodo reads a JSON todo creation body.
func DecodeNewTodo(r io.Reader) (NewTodo, error) {
	var n NewTodo
	if err := decodeStrict(r, &n); err != nil {
		return NewTodo{}, err
	}
	return n, nil
}

func validateTask(task string) error {
	if strings.TrimSpace(task) == "" {
		return NewValidationError("task", "is required")
	}
	if utf8.RuneCountInString(task) > MaxTaskLen {
		return NewValidationError("task", "is too long")
	}
	return nil
}

func (t Todo) String() string {
	return strconv.FormatInt(t.ID, 10) + ": " + t.Task
}
