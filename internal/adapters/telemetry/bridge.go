package telemetry

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/pollwatch/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// Bridge implements sdktrace.SpanProcessor and writes every ended span to a
// Logger at debug level.
type Bridge struct {
	logger ports.Logger
}

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{logger: logger}
}

// OnStart does nothing. Spans are reported once they end.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, duration and attributes.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}
	b.logger.Debug(describeSpan(s))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

func describeSpan(s sdktrace.ReadOnlySpan) string {
	var b strings.Builder
	elapsed := s.EndTime().Sub(s.StartTime())

	if s.Status().Code == codes.Error {
		fmt.Fprintf(&b, "span %s failed after %s: %s", s.Name(), elapsed, s.Status().Description)
	} else {
		fmt.Fprintf(&b, "span %s took %s", s.Name(), elapsed)
	}

	attrs := slices.Clone(s.Attributes())
	if len(attrs) == 0 {
		return b.String()
	}
	slices.SortFunc(attrs, func(x, y attribute.KeyValue) int {
		return cmp.Compare(x.Key, y.Key)
	})

	b.WriteString(" (")
	for i, kv := range attrs {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%s", kv.Key, kv.Value.Emit())
	}
	b.WriteByte(')')
	return b.String()
}
