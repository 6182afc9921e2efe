package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

// Todos manages todos and keeps completed_at in step with completed.
type Todos struct {
	store  model.TodoStore
	logger *logger.Logger
	now    func() time.Time
}

func NewTodos(store model.TodoStore, logger *logger.Logger) *Todos {
	return &Todos{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Todos) Create(ctx context.Context, params model.NewTodo) (model.Todo, error) {
	if err := params.Validate(); err != nil {
		return model.Todo{}, err
	}

	todo := model.Todo{
		UserID:    params.UserID,
		Task:      params.Task,
		Completed: params.Completed,
	}
	if todo.Completed {
		at := s.now().UTC()
		todo.CompletedAt = &at
	}

	created, err := s.store.Create(ctx, todo)
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			return model.Todo{}, err
		}
		s.logger.Error("Todo service: failed to create todo",
			"user_id", params.UserID,
			"error", err.Error())
		return model.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}

	s.logger.Debug("Todo service: todo created",
		"user_id", created.UserID,
		"todo_id", created.ID)

	return created, nil
}

// Update applies patch to todo. Marking a todo completed without an explicit
// CompletedAt stamps the current UTC time. No ownership check is made here.
func (s *Todos) Update(ctx context.Context, todo *model.Todo, patch model.TodoPatch, commit bool) error {
	if patch.Completed != nil && *patch.Completed && patch.CompletedAt == nil {
		at := s.now().UTC()
		patch.CompletedAt = &at
	}

	if err := s.store.Update(ctx, todo, patch, commit); err != nil {
		if errors.Is(err, model.ErrValidation) || errors.Is(err, model.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to update todo: %w", err)
	}

	return nil
}

func (s *Todos) List(ctx context.Context, userID int64) ([]model.Todo, error) {
	todos, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get todos by user id: %w", err)
	}
	return todos, nil
}

// GetOwned returns the todo only when userID owns it. Foreign and malformed
// identifiers both yield model.ErrNotFound.
func (s *Todos) GetOwned(ctx context.Context, userID int64, id any) (model.Todo, error) {
	todo, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Todo{}, err
		}
		return model.Todo{}, fmt.Errorf("failed to get todo by id: %w", err)
	}

	if todo.UserID != userID {
		s.logger.Debug("Todo service: todo belongs to another user",
			"user_id", userID,
			"todo_id", todo.ID)
		return model.Todo{}, model.ErrNotFound
	}

	return todo, nil
}

func (s *Todos) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}
