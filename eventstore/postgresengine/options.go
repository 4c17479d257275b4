package postgresengine

import (
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// Option configures an EventStore.
type Option func(*EventStore) error

// WithTableName overrides the default table "events".
func WithTableName(tableName string) Option {
	return func(es *EventStore) error {
		if strings.TrimSpace(tableName) == "" {
			return eventstore.ErrEmptyEventsTableName
		}

		es.eventTableName = tableName

		return nil
	}
}

// WithLogger sets the logger. SQL statements are logged at debug level, event counts and
// concurrency conflicts at info, cleanup problems at warn, failed operations at error.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) error {
		es.logger = logger

		return nil
	}
}

// WithContextualLogger sets a logger that receives the operation context, which allows
// trace correlation. When both loggers are set, the contextual one wins.
func WithContextualLogger(logger eventstore.ContextualLogger) Option {
	return func(es *EventStore) error {
		es.contextualLogger = logger

		return nil
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(collector eventstore.MetricsCollector) Option {
	return func(es *EventStore) error {
		es.metricsCollector = collector

		return nil
	}
}

// WithTracing sets the tracing collector.
func WithTracing(collector eventstore.TracingCollector) Option {
	return func(es *EventStore) error {
		es.tracingCollector = collector

		return nil
	}
}
