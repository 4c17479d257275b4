package library

import (
	"context"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/catalog"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/readers"
)

const (
	operationAddBook    = "add_book"
	operationRemoveBook = "remove_book"
	operationRegister   = "register"
	operationBorrow     = "borrow"
	operationReturn     = "return"

	spanNamePrefix = "library."

	attrOperation = "operation"
	attrOutcome   = "outcome"
	attrTitle     = "title"
	attrReaderID  = "reader_id"
	attrReason    = "reason"
	attrError     = "error"

	statusSuccess  = "success"
	statusRejected = "rejected"
	statusError    = "error"

	metricBorrowCalls       = "library_borrow_calls_total"
	metricReturnCalls       = "library_return_calls_total"
	metricOperationDuration = "library_operation_duration_seconds"
	metricCatalogBooks      = "library_catalog_books"
	metricReadersRegistered = "library_readers_registered"
	metricJournalFailures   = "library_journal_failures_total"

	logMsgLoan           = "library loan: "
	logMsgCatalogChanged = "library catalog changed: "
	logMsgReaderAdded    = "library reader registered"
	logMsgJournalFailed  = "library journal failed: "
)

func (l *Library) logInfo(ctx context.Context, msg string, args ...any) {
	switch {
	case l.contextualLogger != nil:
		l.contextualLogger.InfoContext(ctx, msg, args...)
	case l.logger != nil:
		l.logger.Info(msg, args...)
	}
}

func (l *Library) logError(ctx context.Context, msg string, args ...any) {
	switch {
	case l.contextualLogger != nil:
		l.contextualLogger.ErrorContext(ctx, msg, args...)
	case l.logger != nil:
		l.logger.Error(msg, args...)
	}
}

func (l *Library) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if l.metricsCollector == nil {
		return
	}

	if collector, ok := l.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		collector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	l.metricsCollector.IncrementCounter(metric, labels)
}

func (l *Library) recordDuration(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	if l.metricsCollector == nil {
		return
	}

	if collector, ok := l.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		collector.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	l.metricsCollector.RecordDuration(metric, duration, labels)
}

func (l *Library) recordValue(ctx context.Context, metric string, value float64, labels map[string]string) {
	if l.metricsCollector == nil {
		return
	}

	if collector, ok := l.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		collector.RecordValueContext(ctx, metric, value, labels)
		return
	}

	l.metricsCollector.RecordValue(metric, value, labels)
}

// startSpan returns a nil span without a tracing collector, finishSpan accepts it.
func (l *Library) startSpan(ctx context.Context, operation string) (context.Context, eventstore.SpanContext) {
	if l.tracingCollector == nil {
		return ctx, nil
	}

	return l.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, map[string]string{attrOperation: operation})
}

func (l *Library) finishSpan(span eventstore.SpanContext, status string, attrs map[string]string) {
	if l.tracingCollector == nil || span == nil {
		return
	}

	l.tracingCollector.FinishSpan(span, status, attrs)
}

func (l *Library) observeJournalFailure(ctx context.Context, span eventstore.SpanContext, operation string, err error) {
	l.incrementCounter(ctx, metricJournalFailures, map[string]string{attrOperation: operation})
	l.finishSpan(span, statusError, map[string]string{attrError: err.Error()})
	l.logError(ctx, logMsgJournalFailed+operation, attrError, err.Error())
}

func (l *Library) observeCatalogChange(ctx context.Context, span eventstore.SpanContext, operation string, title catalog.TitleString) {
	size := l.catalog.Len()

	l.recordValue(ctx, metricCatalogBooks, float64(size), nil)
	l.finishSpan(span, statusSuccess, map[string]string{attrTitle: title})
	l.logInfo(ctx, logMsgCatalogChanged+operation, attrTitle, title, "catalog_size", size)
}

func (l *Library) observeRegistration(ctx context.Context, span eventstore.SpanContext, borrower *readers.Borrower) {
	readerID := strconv.Itoa(borrower.ID())

	l.recordValue(ctx, metricReadersRegistered, float64(l.readers.Len()), nil)
	l.finishSpan(span, statusSuccess, map[string]string{attrReaderID: readerID})
	l.logInfo(ctx, logMsgReaderAdded, attrReaderID, borrower.ID())
}

func (l *Library) observeLoan(
	ctx context.Context,
	span eventstore.SpanContext,
	operation string,
	outcome Outcome,
	readerID int,
	title catalog.TitleString,
	rejection error,
	duration time.Duration,
) {

	metric := metricBorrowCalls
	if operation == operationReturn {
		metric = metricReturnCalls
	}

	l.incrementCounter(ctx, metric, map[string]string{attrOutcome: outcome.String()})
	l.recordDuration(ctx, metricOperationDuration, duration, map[string]string{
		attrOperation: operation,
		attrOutcome:   outcome.String(),
	})

	attrs := map[string]string{attrOutcome: outcome.String()}
	status := statusSuccess

	if rejection != nil {
		status = statusRejected
		attrs[attrReason] = rejection.Error()
	}

	l.finishSpan(span, status, attrs)

	args := []any{attrOutcome, outcome.String(), attrReaderID, readerID, attrTitle, title}
	if rejection != nil {
		args = append(args, attrReason, rejection.Error())
	}

	l.logInfo(ctx, logMsgLoan+operation, args...)
}
