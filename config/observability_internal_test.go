package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func Test_newProviders(t *testing.T) {
	// arrange
	recorder := tracetest.NewSpanRecorder()
	reader := sdkmetric.NewManualReader()
	providers := newProviders(resource.Empty(), sdktrace.WithSpanProcessor(recorder), reader)

	// act
	_, span := providers.TracerProvider.Tracer(InstrumentationName).Start(context.Background(), "library.borrow")
	span.End()

	counter, err := providers.MeterProvider.Meter(InstrumentationName).Int64Counter("library_borrow_calls_total")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)

	// assert
	assert.Len(t, recorder.Ended(), 1)

	var collected metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &collected))
	require.Len(t, collected.ScopeMetrics, 1)
	assert.Equal(t, InstrumentationName, collected.ScopeMetrics[0].Scope.Name)
	assert.NoError(t, providers.Shutdown())
}
