package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

// TodoService defines todo operations.
type TodoService interface {
	Create(ctx context.Context, params model.NewTodo) (model.Todo, error)
	Update(ctx context.Context, todo *model.Todo, patch model.TodoPatch, commit bool) error
	List(ctx context.Context, userID int64) ([]model.Todo, error)
	GetOwned(ctx context.Context, userID int64, id any) (model.Todo, error)
	Delete(ctx context.Context, id int64) error
}

// Todo handles the /todos endpoints. Every todo is resolved through its owner.
type Todo struct {
	todoService    TodoService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewTodo(todoService TodoService, contextManager model.ContextManager, logger *logger.Logger) *Todo {
	return &Todo{
		todoService:    todoService,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Todo) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	todos, err := h.todoService.List(r.Context(), userID)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

func (h *Todo) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	params, err := model.DecodeNewTodo(body(w, r))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}
	params.UserID = userID

	todo, err := h.todoService.Create(r.Context(), params)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	h.logger.Debug("Todo handler: todo created",
		"user_id", userID,
		"todo_id", todo.ID)

	writeJSON(w, http.StatusCreated, todo)
}

func (h *Todo) Get(w http.ResponseWriter, r *http.Request) {
	todo, ok := h.owned(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

// Update applies a partial update. PUT and PATCH behave the same.
func (h *Todo) Update(w http.ResponseWriter, r *http.Request) {
	todo, ok := h.owned(w, r)
	if !ok {
		return
	}

	patch, err := model.DecodeTodoPatch(body(w, r))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	if err := h.todoService.Update(r.Context(), &todo, patch, true); err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (h *Todo) Delete(w http.ResponseWriter, r *http.Request) {
	todo, ok := h.owned(w, r)
	if !ok {
		return
	}

	if err := h.todoService.Delete(r.Context(), todo.ID); err != nil {
		handleError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Todo) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing authorization token")
		return 0, false
	}
	return userID, true
}

func (h *Todo) owned(w http.ResponseWriter, r *http.Request) (model.Todo, bool) {
	userID, ok := h.userID(w, r)
	if !ok {
		return model.Todo{}, false
	}

	todo, err := h.todoService.GetOwned(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, h.logger)
		return model.Todo{}, false
	}

	return todo, true
}
