// Package ports defines the core interfaces for the application.
package ports

import "io"

// Logger defines the interface for logging.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Debug logs a message that is only shown in verbose mode.
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	// Error logs err together with its cause chain.
	Error(err error)

	// With returns a Logger that attaches key=value to every line.
	With(key string, value any) Logger

	// SetOutput redirects all output to w.
	SetOutput(w io.Writer)
	// SetFormat selects the "pretty", "json" or "logfmt" rendering.
	SetFormat(format string) error
	// SetVerbose enables debug lines.
	SetVerbose(verbose bool)
}
