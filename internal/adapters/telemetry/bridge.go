package telemetry

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cnwangjie/arch-backup/internal/core/ports"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// LogBridge implements sdktrace.SpanProcessor by logging every finished span
// with its duration and attributes.
type LogBridge struct {
	logger ports.Logger
}

// NewLogBridge returns a new LogBridge.
func NewLogBridge(logger ports.Logger) *LogBridge {
	return &LogBridge{
		logger: logger,
	}
}

// OnStart does nothing; spans are reported once they end.
func (b *LogBridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the span.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsValid() {
		return
	}

	msg := FormatSpan(s.Name(), s.EndTime().Sub(s.StartTime()), spanAttrs(s))
	if s.Status().Code == codes.Error {
		b.logger.Warn(msg + " failed: " + s.Status().Description)
		return
	}
	b.logger.Info(msg)
}

// ForceFlush does nothing.
func (b *LogBridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *LogBridge) Shutdown(_ context.Context) error {
	return nil
}

func spanAttrs(s sdktrace.ReadOnlySpan) map[string]string {
	attrs := s.Attributes()
	out := make(map[string]string, len(attrs))
	for _, kv := range attrs {
		out[string(kv.Key)] = kv.Value.Emit()
	}
	return out
}

// FormatSpan renders "trace <name> <duration> k=v ...", with keys sorted and
// the duration rounded to the millisecond.
func FormatSpan(name string, d time.Duration, attrs map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "trace %s %s", name, d.Round(time.Millisecond))

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, attrs[k])
	}
	return b.String()
}
