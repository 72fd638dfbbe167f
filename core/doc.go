// Package core defines the error taxonomy shared by every module and the
// JSON response envelope used on the wire.
//
// Every failure crossing a module boundary is a typed *Error carrying a fixed
// HTTP status. The ErrorHandler maps errors to responses: validation errors
// become 400 with a details list, typed errors keep their status and message,
// and anything unclassified is coerced to a 500 without leaking internals.
package core
