package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/embedded"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/AntonStoeckl/library-circulation-go/eventstore/oteladapters"
)

func Test_SlogBridgeLoggerWithHandler_AddsTraceCorrelation(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)

	provider := sdktrace.NewTracerProvider()
	ctx, span := provider.Tracer("library-test").Start(context.Background(), "library.borrow")
	defer span.End()

	// act
	logger.InfoContext(ctx, "library loan: borrow", "outcome", "ok")

	// assert
	var line map[string]any
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "library loan: borrow", line["msg"])
	assert.Equal(t, "ok", line["outcome"])
	assert.Equal(t, span.SpanContext().TraceID().String(), line["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), line["span_id"])
}

func Test_SlogBridgeLoggerWithHandler_AllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug message")
	logger.InfoContext(ctx, "info message")
	logger.WarnContext(ctx, "warn message")
	logger.ErrorContext(ctx, "error message")
	logger.Logger().With("component", "desk").Info("plain message")

	// assert
	output := buf.String()
	for _, expected := range []string{"debug message", "info message", "warn message", "error message", "component=desk"} {
		assert.Contains(t, output, expected)
	}

	assert.NotContains(t, output, "trace_id")
}

func Test_NewSlogBridgeLogger(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("library-test")

	assert.NotNil(t, logger.Logger())
	logger.InfoContext(context.Background(), "goes to the global provider")
}

func Test_OTelLogger_Emit(t *testing.T) {
	// arrange
	fake := &fakeOTelLogger{}
	logger := oteladapters.NewOTelLogger(fake)

	// act
	logger.WarnContext(context.Background(), "library journal failed: borrow", "error", "boom", "attempt", 3, "dangling")

	// assert
	require.Len(t, fake.records, 1)
	record := fake.records[0]
	assert.Equal(t, log.SeverityWarn, record.Severity())
	assert.Equal(t, "library journal failed: borrow", record.Body().AsString())

	attrs := make(map[string]string)
	record.WalkAttributes(func(kv log.KeyValue) bool {
		attrs[kv.Key] = kv.Value.AsString()
		return true
	})

	assert.Equal(t, map[string]string{"error": "boom", "attempt": "3"}, attrs)
}

type fakeOTelLogger struct {
	embedded.Logger
	records []log.Record
}

func (f *fakeOTelLogger) Emit(_ context.Context, record log.Record) {
	f.records = append(f.records, record)
}

func (f *fakeOTelLogger) Enabled(_ context.Context, _ log.EnabledParameters) bool {
	return true
}
