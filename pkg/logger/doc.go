// Package logger builds configured slog.Logger instances and provides typed
// attribute helpers so log keys stay consistent across the codebase.
package logger
