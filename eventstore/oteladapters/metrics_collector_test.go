package oteladapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/library-circulation-go/eventstore/oteladapters"
)

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()

	// act
	collector.RecordDuration("library_operation_duration_seconds", 150*time.Millisecond, map[string]string{
		"operation": "borrow",
		"outcome":   "ok",
	})

	// assert
	histogram, ok := collectMetric(t, reader, "library_operation_duration_seconds").Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, histogram.DataPoints, 1)

	dataPoint := histogram.DataPoints[0]
	assert.Equal(t, uint64(1), dataPoint.Count)
	assert.InDelta(t, 0.15, dataPoint.Sum, 0.001)

	expectedAttrs := attribute.NewSet(attribute.String("operation", "borrow"), attribute.String("outcome", "ok"))
	assert.True(t, dataPoint.Attributes.Equals(&expectedAttrs))
}

func Test_MetricsCollector_IncrementCounter(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()
	labels := map[string]string{"outcome": "book-unavailable"}

	// act
	collector.IncrementCounter("library_borrow_calls_total", labels)
	collector.IncrementCounterContext(context.Background(), "library_borrow_calls_total", labels)
	collector.IncrementCounter("library_borrow_calls_total", map[string]string{"outcome": "ok"})

	// assert
	sum, ok := collectMetric(t, reader, "library_borrow_calls_total").Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.True(t, sum.IsMonotonic)
	require.Len(t, sum.DataPoints, 2)

	values := make(map[string]int64)
	for _, dataPoint := range sum.DataPoints {
		outcome, _ := dataPoint.Attributes.Value("outcome")
		values[outcome.AsString()] = dataPoint.Value
	}

	assert.Equal(t, map[string]int64{"book-unavailable": 2, "ok": 1}, values)
}

func Test_MetricsCollector_RecordValue(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()

	// act
	collector.RecordValue("library_catalog_books", 10, nil)
	collector.RecordValueContext(context.Background(), "library_catalog_books", 9, nil)

	// assert
	gauge, ok := collectMetric(t, reader, "library_catalog_books").Data.(metricdata.Gauge[float64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.InDelta(t, 9.0, gauge.DataPoints[0].Value, 0.0001)
}

func givenMetricsCollector() (*sdkmetric.ManualReader, *oteladapters.MetricsCollector) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return reader, oteladapters.NewMetricsCollector(provider.Meter("library-test"))
}

func collectMetric(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Metrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if m.Name == name {
				return m
			}
		}
	}

	require.Failf(t, "metric not collected", "metric %q", name)

	return metricdata.Metrics{}
}
