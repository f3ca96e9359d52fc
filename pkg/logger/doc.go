// Package logger provides structured logging on stderr with configurable
// log levels. It wraps the standard log/slog package and provides a simple
// interface for application-wide logging.
package logger
