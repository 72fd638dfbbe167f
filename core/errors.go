package core

import "net/http"

// Error kinds. Each kind carries exactly one HTTP status; the mapping is a
// hard contract tested end-to-end.
const (
	KindNoToken      = "no_token_provided"
	KindInvalidToken = "invalid_token"
	KindNotFound     = "not_found"
	KindForbidden    = "forbidden"
	KindValidation   = "validation_failed"
	KindConflict     = "conflict"
	KindInternal     = "internal"
)

// Error is a typed error with a fixed transport status.
type Error struct {
	Status  int    `json:"-"`
	Kind    string `json:"-"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

// Authentication errors. Missing and invalid credentials map to the same
// status but keep distinct kinds and messages.
var (
	ErrNoTokenProvided = &Error{Status: http.StatusUnauthorized, Kind: KindNoToken, Message: "No token provided"}
	ErrInvalidToken    = &Error{Status: http.StatusUnauthorized, Kind: KindInvalidToken, Message: "Invalid token"}
	ErrTokenError      = &Error{Status: http.StatusUnauthorized, Kind: KindInvalidToken, Message: "Token error"}
	ErrTokenMalformed  = &Error{Status: http.StatusUnauthorized, Kind: KindInvalidToken, Message: "Token malformatted"}
)

// NotFound returns a 404 error with the given message.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Kind: KindNotFound, Message: message}
}

// Forbidden returns a 403 error with the given message.
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Kind: KindForbidden, Message: message}
}

// Conflict returns a 409 error with the given message.
func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Kind: KindConflict, Message: message}
}

// Unauthorized returns a 401 error with the given message. Used for
// credential failures that are not token-transport related.
func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Kind: KindInvalidToken, Message: message}
}

// BadRequest returns a 400 error with the given message.
func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Kind: KindValidation, Message: message}
}

// Internal returns a 500 error. The message is what the caller sees, so it
// must not carry implementation detail.
func Internal(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Kind: KindInternal, Message: message}
}
