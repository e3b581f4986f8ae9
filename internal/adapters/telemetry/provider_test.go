package telemetry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/pollwatch/internal/adapters/telemetry"
	"go.trai.ch/pollwatch/internal/core/ports"
)

func newRecordingTracer(t *testing.T) (*telemetry.OTelTracer, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })
	return telemetry.NewOTelTracerFromProvider(tp, "test"), sr
}

func TestOTelTracer_SpanAttributes(t *testing.T) {
	tracer, sr := newRecordingTracer(t)

	_, span := tracer.Start(t.Context(), "poll.full", ports.WithAttribute("round", "full"))
	span.SetAttribute("paths", 3)
	span.SetAttribute("fingerprint", uint64(0xabc))
	span.SetAttribute("baseline", true)
	span.SetAttribute("deleted", []string{"y"})
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "poll.full", ended[0].Name())

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range ended[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "full", attrs["round"].AsString())
	assert.Equal(t, int64(3), attrs["paths"].AsInt64())
	assert.Equal(t, "0000000000000abc", attrs["fingerprint"].AsString())
	assert.True(t, attrs["baseline"].AsBool())
	assert.Equal(t, []string{"y"}, attrs["deleted"].AsStringSlice())
}

func TestOTelSpan_RecordError(t *testing.T) {
	tracer, sr := newRecordingTracer(t)

	_, span := tracer.Start(t.Context(), "poll.modified")
	span.RecordError(nil)
	span.RecordError(errors.New("find exited with error"))
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "find exited with error", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1)
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx, span := tracer.Start(t.Context(), "noop")

	assert.Equal(t, t.Context(), ctx)
	assert.NotPanics(t, func() {
		span.SetAttribute("k", "v")
		span.RecordError(errors.New("x"))
		span.End()
	})
}
