package telemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RomkoSI/ice/internal/core/ports"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var _ sdktrace.SpanProcessor = (*LogBridge)(nil)

// LogBridge implements sdktrace.SpanProcessor by turning finished spans into debug log lines.
type LogBridge struct {
	logger ports.Logger
}

// NewLogBridge returns a new LogBridge.
func NewLogBridge(logger ports.Logger) *LogBridge {
	return &LogBridge{logger: logger}
}

// OnStart does nothing; spans are reported once they end.
func (b *LogBridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, its attributes and its duration.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsValid() {
		return
	}
	b.logger.Debug(FormatSpan(s.Name(), attributes(s), s.EndTime().Sub(s.StartTime()), s.Status()))
}

// ForceFlush does nothing.
func (b *LogBridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *LogBridge) Shutdown(_ context.Context) error {
	return nil
}

func attributes(s sdktrace.ReadOnlySpan) []string {
	attrs := s.Attributes()
	out := make([]string, 0, len(attrs))
	for _, kv := range attrs {
		out = append(out, string(kv.Key)+"="+kv.Value.Emit())
	}
	return out
}

// FormatSpan renders a finished span as "name k=v (12ms)", followed by the
// failure description for failed spans.
func FormatSpan(name string, attrs []string, d time.Duration, status sdktrace.Status) string {
	var b strings.Builder
	b.WriteString(name)
	for _, a := range attrs {
		b.WriteString(" ")
		b.WriteString(a)
	}
	fmt.Fprintf(&b, " (%s)", d.Round(time.Millisecond))
	if status.Code == codes.Error {
		desc := status.Description
		if desc == "" {
			desc = "failed"
		}
		b.WriteString(": ")
		b.WriteString(desc)
	}
	return b.String()
}
