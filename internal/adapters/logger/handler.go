package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/RomkoSI/ice/internal/ui/output"
	"github.com/RomkoSI/ice/internal/ui/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// levelMarks decorate each level, most severe first.
var levelMarks = []struct {
	min   slog.Level
	icon  string
	color lipgloss.Color
}{
	{slog.LevelError, style.Cross, style.Red},
	{slog.LevelWarn, style.Warning, style.Yellow},
	{slog.LevelInfo, "", style.Slate},
	{slog.LevelDebug - 4, style.Circle, style.Muted},
}

// PrettyHandler writes one colored line per record: icon, message, then key=value attributes.
type PrettyHandler struct {
	mu     *sync.Mutex
	out    *termenv.Output
	level  slog.Leveler
	suffix string // preformatted handler attributes
	prefix string // dotted group path for attribute keys
}

// NewPrettyHandler creates a PrettyHandler writing to w, or stderr if w is nil.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	h := &PrettyHandler{mu: &sync.Mutex{}, out: output.New(w), level: slog.LevelInfo}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var line strings.Builder
	mark := levelMarks[len(levelMarks)-1]
	for _, m := range levelMarks {
		if r.Level >= m.min {
			mark = m
			break
		}
	}
	if mark.icon != "" {
		line.WriteString(mark.icon + " ")
	}
	line.WriteString(r.Message)
	line.WriteString(h.suffix)
	r.Attrs(func(a slog.Attr) bool {
		line.WriteString(h.attr(a))
		return true
	})

	styled := h.out.String(line.String()).Foreground(termenv.RGBColor(string(mark.color)))

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

func (h *PrettyHandler) attr(a slog.Attr) string {
	return " " + h.prefix + a.Key + "=" + a.Value.String()
}

// WithAttrs returns a handler that appends attrs to every line.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	child := *h
	for _, a := range attrs {
		child.suffix += h.attr(a)
	}
	return &child
}

// WithGroup returns a handler that prefixes later attribute keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	child := *h
	if name != "" {
		child.prefix += name + "."
	}
	return &child
}
