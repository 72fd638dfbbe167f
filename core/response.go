package core

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// MessageResponse is the body shape for simple confirmation responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// Message writes a {message} body with the given status.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, MessageResponse{Message: message})
}

// NotFoundHandler is the JSON fallback for unmatched routes.
func NotFoundHandler(w http.ResponseWriter, _ *http.Request) {
	Message(w, http.StatusNotFound, "Not Found")
}

// MethodNotAllowedHandler is the JSON fallback for unmatched methods.
func MethodNotAllowedHandler(w http.ResponseWriter, _ *http.Request) {
	Message(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}
