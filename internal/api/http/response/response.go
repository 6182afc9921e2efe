// Package response writes the JSON bodies shared by handlers and middleware.
package response

import (
	"net/http"

	"github.com/goccy/go-json"
)

// Message is the body of every error and informational response.
type Message struct {
	Message string `json:"message"`
}

// Status is the body of the health endpoint.
type Status struct {
	Status string `json:"status"`
}

// JSON writes v as a JSON body with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Message{Message: message})
}
