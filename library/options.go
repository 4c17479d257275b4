package library

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/catalog"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/readers"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

var (
	// ErrInvalidBorrowLimit is returned by WithBorrowLimit for a limit outside [1, readers.MaxBorrowedBooks].
	ErrInvalidBorrowLimit = errors.New("borrow limit must be between 1 and the number of borrower slots")

	// ErrNilJournal is returned by WithJournal for a nil Journal.
	ErrNilJournal = errors.New("journal must not be nil")

	// ErrNilClock is returned by WithClock for a nil clock.
	ErrNilClock = errors.New("clock must not be nil")
)

// Option configures a Library.
type Option func(*Library) error

// WithCatalogOptions configures the catalog index, e.g. catalog.WithCapacity.
func WithCatalogOptions(options ...catalog.Option) Option {
	return func(l *Library) error {
		l.catalogOptions = append(l.catalogOptions, options...)

		return nil
	}
}

// WithReaderRegistryOptions configures the reader registry, e.g. readers.WithIDGenerator.
func WithReaderRegistryOptions(options ...readers.RegistryOption) Option {
	return func(l *Library) error {
		l.registryOptions = append(l.registryOptions, options...)

		return nil
	}
}

// WithBorrowLimit lowers the number of books a reader may hold. It cannot exceed
// readers.MaxBorrowedBooks.
func WithBorrowLimit(limit int) Option {
	return func(l *Library) error {
		if limit < 1 || limit > readers.MaxBorrowedBooks {
			return ErrInvalidBorrowLimit
		}

		l.borrowLimit = limit

		return nil
	}
}

// WithJournal records every operation in the journal before it changes any state.
func WithJournal(journal Journal) Option {
	return func(l *Library) error {
		if journal == nil {
			return ErrNilJournal
		}

		l.journal = journal

		return nil
	}
}

// WithRetryOptions tunes how journal appends are retried after concurrency conflicts.
func WithRetryOptions(options ...shell.RetryOption) Option {
	return func(l *Library) error {
		l.retryOptions = append(l.retryOptions, options...)

		return nil
	}
}

// WithCorrelationID sets the correlation ID written into the metadata of all journal events.
// By default every Library gets a random one.
func WithCorrelationID(correlationID uuid.UUID) Option {
	return func(l *Library) error {
		l.correlationID = correlationID

		return nil
	}
}

// WithClock replaces time.Now for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Library) error {
		if now == nil {
			return ErrNilClock
		}

		l.now = now

		return nil
	}
}

// WithLogger sets the logger. Outcomes are logged at info, journal failures at error.
func WithLogger(logger eventstore.Logger) Option {
	return func(l *Library) error {
		l.logger = logger

		return nil
	}
}

// WithContextualLogger sets a context-aware logger, it wins over WithLogger.
func WithContextualLogger(logger eventstore.ContextualLogger) Option {
	return func(l *Library) error {
		l.contextualLogger = logger

		return nil
	}
}

// WithMetrics sets the metrics collector. It is handed on to the journal retries.
func WithMetrics(collector eventstore.MetricsCollector) Option {
	return func(l *Library) error {
		l.metricsCollector = collector

		return nil
	}
}

// WithTracing sets the tracing collector.
func WithTracing(collector eventstore.TracingCollector) Option {
	return func(l *Library) error {
		l.tracingCollector = collector

		return nil
	}
}
