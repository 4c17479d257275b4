package postgresengine

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	operationQuery  = "query"
	operationAppend = "append"

	spanNameQuery  = "eventstore.query"
	spanNameAppend = "eventstore.append"

	spanAttrOperation    = "operation"
	spanAttrEventCount   = "event_count"
	spanAttrEventType    = "event_type"
	spanAttrExpectedSeq  = "expected_sequence"
	spanAttrMaxSequence  = "max_sequence"
	spanAttrRowsAffected = "rows_affected"
	spanAttrErrorType    = "error_type"
	spanAttrDurationMS   = "duration_ms"

	statusSuccess  = "success"
	statusError    = "error"
	statusConflict = "conflict"

	metricQueryDuration        = "eventstore_query_duration_seconds"
	metricAppendDuration       = "eventstore_append_duration_seconds"
	metricEventsQueried        = "eventstore_events_queried_total"
	metricEventsAppended       = "eventstore_events_appended_total"
	metricConcurrencyConflicts = "eventstore_concurrency_conflicts_total"
	metricDatabaseErrors       = "eventstore_database_errors_total"

	errorTypeBuildQuery         = "build_query"
	errorTypeDatabaseQuery      = "database_query"
	errorTypeRowScan            = "row_scan"
	errorTypeBuildStorableEvent = "build_storable_event"
	errorTypeDatabaseExec       = "database_exec"
	errorTypeRowsAffected       = "rows_affected"

	logMsgSQLExecuted         = "eventstore sql executed: "
	logMsgOperation           = "eventstore operation: "
	logMsgOperationFailed     = "eventstore operation failed: "
	logMsgQueryCompleted      = "query completed"
	logMsgEventsAppended      = "events appended"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logMsgCloseRowsFailed     = "closing database rows failed"

	logAttrError            = "error"
	logAttrErrorType        = "error_type"
	logAttrQuery            = "query"
	logAttrEventCount       = "event_count"
	logAttrDurationMS       = "duration_ms"
	logAttrExpectedEvents   = "expected_events"
	logAttrRowsAffected     = "rows_affected"
	logAttrExpectedSequence = "expected_sequence"
)

func (es *EventStore) logDebug(ctx context.Context, msg string, args ...any) {
	switch {
	case es.contextualLogger != nil:
		es.contextualLogger.DebugContext(ctx, msg, args...)
	case es.logger != nil:
		es.logger.Debug(msg, args...)
	}
}

func (es *EventStore) logInfo(ctx context.Context, msg string, args ...any) {
	switch {
	case es.contextualLogger != nil:
		es.contextualLogger.InfoContext(ctx, msg, args...)
	case es.logger != nil:
		es.logger.Info(msg, args...)
	}
}

func (es *EventStore) logWarn(ctx context.Context, msg string, args ...any) {
	switch {
	case es.contextualLogger != nil:
		es.contextualLogger.WarnContext(ctx, msg, args...)
	case es.logger != nil:
		es.logger.Warn(msg, args...)
	}
}

func (es *EventStore) logError(ctx context.Context, msg string, args ...any) {
	switch {
	case es.contextualLogger != nil:
		es.contextualLogger.ErrorContext(ctx, msg, args...)
	case es.logger != nil:
		es.logger.Error(msg, args...)
	}
}

func (es *EventStore) logSQL(ctx context.Context, operation string, sqlQuery string, duration time.Duration) {
	es.logDebug(ctx, logMsgSQLExecuted+operation, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
}

func (es *EventStore) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if es.metricsCollector == nil {
		return
	}

	if collector, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		collector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	es.metricsCollector.IncrementCounter(metric, labels)
}

func (es *EventStore) recordDuration(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	if es.metricsCollector == nil {
		return
	}

	if collector, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		collector.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	es.metricsCollector.RecordDuration(metric, duration, labels)
}

func (es *EventStore) recordValue(ctx context.Context, metric string, value float64, labels map[string]string) {
	if es.metricsCollector == nil {
		return
	}

	if collector, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		collector.RecordValueContext(ctx, metric, value, labels)
		return
	}

	es.metricsCollector.RecordValue(metric, value, labels)
}

func (es *EventStore) startSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, eventstore.SpanContext) {

	if es.tracingCollector == nil {
		return ctx, nil
	}

	return es.tracingCollector.StartSpan(ctx, name, attrs)
}

func (es *EventStore) finishSpan(span eventstore.SpanContext, status string, attrs map[string]string) {
	if es.tracingCollector == nil || span == nil {
		return
	}

	es.tracingCollector.FinishSpan(span, status, attrs)
}

func appendSpanAttrs(
	events eventstore.StorableEvents,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) map[string]string {

	attrs := map[string]string{
		spanAttrOperation:   operationAppend,
		spanAttrEventCount:  strconv.Itoa(len(events)),
		spanAttrExpectedSeq: strconv.FormatUint(uint64(expectedMaxSequenceNumber), 10),
	}

	if len(events) == 1 {
		attrs[spanAttrEventType] = events[0].EventType
	}

	return attrs
}

func (es *EventStore) observeQuerySuccess(
	ctx context.Context,
	span eventstore.SpanContext,
	eventCount int,
	maxSequenceNumber eventstore.MaxSequenceNumberUint,
	duration time.Duration,
) {

	labels := map[string]string{spanAttrOperation: operationQuery, "status": statusSuccess}
	es.recordDuration(ctx, metricQueryDuration, duration, labels)
	es.recordValue(ctx, metricEventsQueried, float64(eventCount), labels)

	es.finishSpan(span, statusSuccess, map[string]string{
		spanAttrEventCount:  strconv.Itoa(eventCount),
		spanAttrMaxSequence: strconv.FormatUint(uint64(maxSequenceNumber), 10),
		spanAttrDurationMS:  strconv.FormatFloat(toMilliseconds(duration), 'f', 3, 64),
	})

	es.logInfo(ctx, logMsgOperation+logMsgQueryCompleted,
		logAttrEventCount, eventCount,
		logAttrDurationMS, toMilliseconds(duration))
}

func (es *EventStore) observeAppendSuccess(
	ctx context.Context,
	span eventstore.SpanContext,
	eventCount int,
	duration time.Duration,
) {

	labels := map[string]string{spanAttrOperation: operationAppend, "status": statusSuccess}
	es.recordDuration(ctx, metricAppendDuration, duration, labels)
	es.recordValue(ctx, metricEventsAppended, float64(eventCount), labels)

	es.finishSpan(span, statusSuccess, map[string]string{
		spanAttrRowsAffected: strconv.Itoa(eventCount),
		spanAttrDurationMS:   strconv.FormatFloat(toMilliseconds(duration), 'f', 3, 64),
	})

	es.logInfo(ctx, logMsgOperation+logMsgEventsAppended,
		logAttrEventCount, eventCount,
		logAttrDurationMS, toMilliseconds(duration))
}

func (es *EventStore) observeConcurrencyConflict(
	ctx context.Context,
	span eventstore.SpanContext,
	expectedEvents int,
	rowsAffected int64,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	duration time.Duration,
) {

	es.recordDuration(ctx, metricAppendDuration, duration, map[string]string{
		spanAttrOperation: operationAppend,
		"status":          statusConflict,
	})
	es.incrementCounter(ctx, metricConcurrencyConflicts, map[string]string{spanAttrOperation: operationAppend})

	es.finishSpan(span, statusConflict, map[string]string{
		spanAttrRowsAffected: strconv.FormatInt(rowsAffected, 10),
	})

	es.logInfo(ctx, logMsgOperation+logMsgConcurrencyConflict,
		logAttrExpectedEvents, expectedEvents,
		logAttrRowsAffected, rowsAffected,
		logAttrExpectedSequence, expectedMaxSequenceNumber)
}

func (es *EventStore) observeFailure(
	ctx context.Context,
	span eventstore.SpanContext,
	operation string,
	errorType string,
	duration time.Duration,
	err error,
) {

	metric := metricQueryDuration
	if operation == operationAppend {
		metric = metricAppendDuration
	}

	es.recordDuration(ctx, metric, duration, map[string]string{spanAttrOperation: operation, "status": statusError})
	es.incrementCounter(ctx, metricDatabaseErrors, map[string]string{
		spanAttrOperation: operation,
		spanAttrErrorType: errorType,
	})

	es.finishSpan(span, statusError, map[string]string{spanAttrErrorType: errorType})

	es.logError(ctx, logMsgOperationFailed+operation, logAttrError, err.Error(), logAttrErrorType, errorType)
}

// toMilliseconds rounds to three decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
