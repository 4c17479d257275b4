// Package oteladapters implements the eventstore observability interfaces with OpenTelemetry.
//
// The same adapters serve the journal engine and the library:
//
//	meter := meterProvider.Meter("library")
//	tracer := tracerProvider.Tracer("library")
//
//	lib, err := library.New(
//		library.WithMetrics(oteladapters.NewMetricsCollector(meter)),
//		library.WithTracing(oteladapters.NewTracingCollector(tracer)),
//		library.WithContextualLogger(oteladapters.NewSlogBridgeLogger("library")),
//	)
package oteladapters
