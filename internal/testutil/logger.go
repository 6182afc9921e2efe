// Package testutil holds helpers shared by tests.
package testutil

import (
	"io"

	"github.com/dtroode/todo-server/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, 0)
}
