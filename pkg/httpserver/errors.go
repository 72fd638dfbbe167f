package httpserver

import "errors"

var (
	// ErrStart wraps listener and startup failures reported by Run.
	ErrStart = errors.New("failed to start HTTP server")
	// ErrShutdown wraps failures to drain in-flight requests within the
	// shutdown timeout.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
)
