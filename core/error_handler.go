package core

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/taskhub/taskhub/pkg/logger"
	"github.com/taskhub/taskhub/pkg/requestid"
	"github.com/taskhub/taskhub/pkg/validator"
)

// FieldError is one entry of a validation failure response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse is the wire shape for failed requests. Details is present
// only for validation failures, Stack only outside production mode.
type errorResponse struct {
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
	Stack   string       `json:"stack,omitempty"`
}

// ErrorHandler classifies errors into the taxonomy and renders them.
// Configure once in main and share across modules.
type ErrorHandler struct {
	log   *slog.Logger
	debug bool
}

// NewErrorHandler creates an ErrorHandler. When debug is true, responses
// include error chains and stack traces to aid local development.
func NewErrorHandler(log *slog.Logger, debug bool) *ErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ErrorHandler{log: log, debug: debug}
}

// Handle maps err onto the taxonomy, logs it, and writes the response.
// Unknown errors are coerced to a 500 so implementation detail never leaks.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	resp := errorResponse{Message: "Internal Server Error"}

	var typed *Error
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		status = http.StatusBadRequest
		resp.Message = "Validation error"
		resp.Details = make([]FieldError, 0, len(validationErrs))
		for _, ve := range validationErrs {
			resp.Details = append(resp.Details, FieldError{Field: ve.Field, Message: ve.Message})
		}
	case errors.As(err, &typed):
		status = typed.Status
		resp.Message = typed.Message
	}

	if h.debug {
		resp.Stack = err.Error() + "\n" + string(debug.Stack())
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.log.LogAttrs(r.Context(), level, "request error",
		logger.Error(err),
		logger.RequestID(requestid.FromContext(r.Context())),
		slog.Int("status", status),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	JSON(w, status, resp)
}
