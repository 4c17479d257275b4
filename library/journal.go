package library

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// ErrJournalNotConfigured is returned by LoanHistory when the Library has no journal.
var ErrJournalNotConfigured = errors.New("journal is not configured")

// Journal is the part of an event store the Library writes to.
// *postgresengine.EventStore implements it.
type Journal interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		event eventstore.StorableEvent,
		additionalEvents ...eventstore.StorableEvent,
	) error
}

// record appends the event guarded by the filter and retries on concurrency conflicts.
// Without a journal it does nothing.
func (l *Library) record(ctx context.Context, operation string, event core.DomainEvent, filter eventstore.Filter) error {
	if l.journal == nil {
		return nil
	}

	storableEvent, err := shell.StorableEventFrom(event, shell.NewEventMetadata(l.correlationID))
	if err != nil {
		return err
	}

	retryOptions := l.retryOptions
	if l.metricsCollector != nil {
		retryOptions = append(retryOptions[:len(retryOptions):len(retryOptions)], shell.WithMetrics(l.metricsCollector, operation))
	}

	_, err = shell.RetryWithExponentialBackoff(
		ctx,
		func(ctx context.Context) error {
			_, maxSequenceNumber, queryErr := l.journal.Query(ctx, filter)
			if queryErr != nil {
				return queryErr
			}

			return l.journal.Append(ctx, filter, maxSequenceNumber, storableEvent)
		},
		retryOptions...,
	)

	return err
}

func bookFilter(title core.TitleString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookRemovedFromCatalogEventType,
			core.BookBorrowedEventType,
			core.BookReturnedEventType,
		).
		AndAnyPredicateOf(eventstore.P("Title", title)).
		Finalize()
}

func readerFilter(readerID core.ReaderIDInt) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.ReaderRegisteredEventType).
		AndAnyPredicateOf(eventstore.P("ReaderID", core.ToReaderIDString(readerID))).
		Finalize()
}

// loanFilter selects what a borrow or return decision depends on: the loans of the title
// and the loans of the reader.
func loanFilter(title core.TitleString, readerID core.ReaderIDInt) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookRemovedFromCatalogEventType,
			core.BookBorrowedEventType,
			core.BookReturnedEventType,
		).
		AndAnyPredicateOf(eventstore.P("Title", title)).
		OrMatching().
		AnyEventTypeOf(
			core.ReaderRegisteredEventType,
			core.BookBorrowedEventType,
			core.BookReturnedEventType,
		).
		AndAnyPredicateOf(eventstore.P("ReaderID", core.ToReaderIDString(readerID))).
		Finalize()
}

func loanHistoryFilter(readerID core.ReaderIDInt) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookBorrowedEventType,
			core.BorrowingBookFailedEventType,
			core.BookReturnedEventType,
			core.ReturningBookFailedEventType,
		).
		AndAnyPredicateOf(eventstore.P("ReaderID", core.ToReaderIDString(readerID))).
		Finalize()
}
