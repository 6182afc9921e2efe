package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

// handleError writes the JSON error response for err.
func handleError(w http.ResponseWriter, err error, log *logger.Logger) {
	var verr *model.ValidationError

	switch {
	case errors.As(err, &verr):
		writeMessage(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, model.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, model.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, model.ErrTokenExpired):
		writeMessage(w, http.StatusUnauthorized, "token has expired")
	case errors.Is(err, model.ErrTokenRevoked),
		errors.Is(err, model.ErrTokenMismatch),
		errors.Is(err, model.ErrTokenInvalid):
		writeMessage(w, http.StatusUnauthorized, "invalid token")
	default:
		log.Error("HTTP handler: unexpected error", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
