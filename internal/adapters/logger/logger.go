// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/RomkoSI/ice/internal/core/ports"
	charmlog "github.com/charmbracelet/log"
	"go.trai.ch/zerr"
)

// Output formats accepted by SetFormat.
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
)

// ErrUnknownFormat is returned by SetFormat for an unsupported format name.
var ErrUnknownFormat = zerr.New("unknown log format")

// messager describes an error that can report its own message without the chain.
// This matches the Message() method provided by zerr.Error.
type messager interface {
	Message() string
}

// metadataer describes an error that carries structured metadata.
type metadataer interface {
	Metadata() map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	level   *slog.LevelVar
	format  string
	output  io.Writer
	attrs   []any
	verbose bool
}

var _ ports.Logger = (*Logger)(nil)

// New creates a new Logger writing pretty output to stderr.
func New() ports.Logger {
	l := &Logger{
		level:  &slog.LevelVar{},
		format: FormatPretty,
		output: os.Stderr,
	}
	l.rebuild()
	return l
}

// rebuild recreates the slog handler from the current settings. Callers hold mu.
func (l *Logger) rebuild() {
	w := l.output
	if w == nil {
		w = os.Stderr
	}

	var handler slog.Handler
	switch l.format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: l.level})
	case FormatLogfmt:
		lvl := charmlog.InfoLevel
		if l.verbose {
			lvl = charmlog.DebugLevel
		}
		handler = charmlog.NewWithOptions(w, charmlog.Options{
			Level:     lvl,
			Formatter: charmlog.LogfmtFormatter,
		})
	default:
		handler = NewPrettyHandler(w, &slog.HandlerOptions{Level: l.level})
	}

	l.logger = slog.New(handler).With(l.attrs...)
}

// SetOutput updates the logger's output destination.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
	l.rebuild()
}

// SetFormat switches between pretty, JSON and logfmt rendering.
func (l *Logger) SetFormat(format string) error {
	if !slices.Contains([]string{FormatPretty, FormatJSON, FormatLogfmt}, format) {
		return zerr.With(zerr.Wrap(ErrUnknownFormat, "log format must be pretty, json or logfmt"), "format", format)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.format = format
	l.rebuild()
	return nil
}

// SetVerbose enables or disables debug output.
func (l *Logger) SetVerbose(verbose bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = verbose
	if verbose {
		l.level.Set(slog.LevelDebug)
	} else {
		l.level.Set(slog.LevelInfo)
	}
	l.rebuild()
}

// With returns a child logger that attaches key=value to every line.
// The child keeps the parent's output, format and verbosity.
func (l *Logger) With(key string, value any) ports.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	child := &Logger{
		level:   l.level,
		format:  l.format,
		output:  l.output,
		verbose: l.verbose,
		attrs:   append(slices.Clone(l.attrs), key, value),
	}
	child.rebuild()
	return child
}

// Debug logs a message shown only in verbose mode.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err. In pretty mode the cause chain is rendered as an indented block.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.format != FormatPretty {
		l.logger.Error("operation failed", "error", err.Error())
		return
	}

	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

// ErrorEntry is one level of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the chain of zerr errors. A standard error ends the
// walk with its full text.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var carried map[string]any
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: carried})
			break
		}

		entry := ErrorEntry{Message: m.Message(), Metadata: carried}
		carried = nil
		if md, ok := current.(metadataer); ok {
			entry.Metadata = mergeMetadata(entry.Metadata, md.Metadata())
		}
		current = errors.Unwrap(current)

		// zerr.With on a plain error adds an unnamed level; its metadata belongs to the cause.
		if entry.Message == "" && current != nil {
			carried = entry.Metadata
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func mergeMetadata(a, b map[string]any) map[string]any {
	if len(a) == 0 {
		return b
	}
	out := make(map[string]any, len(a)+len(b))
	maps.Copy(out, a)
	maps.Copy(out, b)
	return out
}

// formatErrorEntries renders entries as:
//
//	Error: outer
//	       key: value
//
//	  Caused by:
//	    → inner
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string
	for i, e := range entries {
		msgLines := strings.Split(e.Message, "\n")
		prefix, indent := "    → ", "      "
		if i == 0 {
			prefix, indent = "Error: ", "       "
		} else if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}

		lines = append(lines, prefix+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}

		keys := make([]string, 0, len(e.Metadata))
		for k := range e.Metadata {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, e.Metadata[k]))
		}
	}
	return strings.Join(lines, "\n")
}
