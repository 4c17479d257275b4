package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registers the postgres dialect
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/postgresengine/internal/adapters"
)

const (
	defaultEventTableName = "events"
	dialectPostgres       = "postgres"

	colEventType      = "event_type"
	colOccurredAt     = "occurred_at"
	colPayload        = "payload"
	colMetadata       = "metadata"
	colSequenceNumber = "sequence_number"

	cteContext  = "context"
	cteVals     = "vals"
	aliasMaxSeq = "max_seq"

	castText        = "?::text"
	castTimestamp   = "?::timestamp with time zone"
	castJsonb       = "?::jsonb"
	payloadContains = colPayload + " @> ?::jsonb"
)

type sqlQueryString = string

// EventStore appends to and queries the journal table.
// It is safe for concurrent use as long as the underlying connection is.
type EventStore struct {
	db               adapters.DBAdapter
	eventTableName   string
	logger           eventstore.Logger
	contextualLogger eventstore.ContextualLogger
	metricsCollector eventstore.MetricsCollector
	tracingCollector eventstore.TracingCollector
}

// NewEventStoreFromPGXPool creates an EventStore on a pgx connection pool.
func NewEventStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapter(db), options)
}

// NewEventStoreFromSQLDB creates an EventStore on a database/sql handle.
func NewEventStoreFromSQLDB(db *sql.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLAdapter(db), options)
}

// NewEventStoreFromSQLX creates an EventStore on a sqlx handle.
func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLXAdapter(db), options)
}

func newEventStore(db adapters.DBAdapter, options []Option) (*EventStore, error) {
	es := &EventStore{
		db:             db,
		eventTableName: defaultEventTableName,
	}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	return es, nil
}

// Query returns the events selected by the filter in sequence order, together with the
// highest sequence number among them (0 when there are none).
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	start := time.Now()
	ctx, span := es.startSpan(ctx, spanNameQuery, map[string]string{spanAttrOperation: operationQuery})

	fail := func(errorType string, err error) (eventstore.StorableEvents, eventstore.MaxSequenceNumberUint, error) {
		es.observeFailure(ctx, span, operationQuery, errorType, time.Since(start), err)

		return nil, 0, err
	}

	sqlQuery, args, buildErr := es.buildSelectQuery(filter)
	if buildErr != nil {
		return fail(errorTypeBuildQuery, errors.Join(eventstore.ErrBuildingQueryFailed, buildErr))
	}

	rows, queryErr := es.db.Query(ctx, sqlQuery, args...)
	es.logSQL(ctx, operationQuery, sqlQuery, time.Since(start))
	if queryErr != nil {
		return fail(errorTypeDatabaseQuery, errors.Join(eventstore.ErrQueryingEventsFailed, queryErr))
	}
	defer es.closeRows(ctx, rows)

	events := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for rows.Next() {
		var (
			eventType      string
			occurredAt     time.Time
			payload        []byte
			metadata       []byte
			sequenceNumber int64
		)

		if scanErr := rows.Scan(&eventType, &occurredAt, &payload, &metadata, &sequenceNumber); scanErr != nil {
			return fail(errorTypeRowScan, errors.Join(eventstore.ErrScanningDBRowFailed, scanErr))
		}

		event, buildEventErr := eventstore.BuildStorableEvent(eventType, occurredAt, payload, metadata)
		if buildEventErr != nil {
			return fail(errorTypeBuildStorableEvent, errors.Join(eventstore.ErrBuildingStorableEventFailed, buildEventErr))
		}

		events = append(events, event)
		maxSequenceNumber = eventstore.MaxSequenceNumberUint(sequenceNumber) //nolint:gosec // sequence numbers are positive
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return fail(errorTypeDatabaseQuery, errors.Join(eventstore.ErrQueryingEventsFailed, rowsErr))
	}

	es.observeQuerySuccess(ctx, span, len(events), maxSequenceNumber, time.Since(start))

	return events, maxSequenceNumber, nil
}

// Append inserts the events atomically, but only when no event selected by the filter
// was appended after expectedMaxSequenceNumber. Use the filter of the Query the decision
// was based on.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	allEvents := append(eventstore.StorableEvents{event}, additionalEvents...)

	start := time.Now()
	ctx, span := es.startSpan(ctx, spanNameAppend, appendSpanAttrs(allEvents, expectedMaxSequenceNumber))

	fail := func(errorType string, err error) error {
		es.observeFailure(ctx, span, operationAppend, errorType, time.Since(start), err)

		return err
	}

	sqlQuery, args, buildErr := es.buildInsertQuery(allEvents, filter, expectedMaxSequenceNumber)
	if buildErr != nil {
		return fail(errorTypeBuildQuery, errors.Join(eventstore.ErrBuildingQueryFailed, buildErr))
	}

	result, execErr := es.db.Exec(ctx, sqlQuery, args...)
	es.logSQL(ctx, operationAppend, sqlQuery, time.Since(start))
	if execErr != nil {
		return fail(errorTypeDatabaseExec, errors.Join(eventstore.ErrAppendingEventFailed, execErr))
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		return fail(errorTypeRowsAffected, errors.Join(eventstore.ErrGettingRowsAffectedFailed, rowsAffectedErr))
	}

	if rowsAffected < int64(len(allEvents)) {
		es.observeConcurrencyConflict(ctx, span, len(allEvents), rowsAffected, expectedMaxSequenceNumber, time.Since(start))

		return eventstore.ErrConcurrencyConflict
	}

	es.observeAppendSuccess(ctx, span, len(allEvents), time.Since(start))

	return nil
}

func (es *EventStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		es.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

func (es *EventStore) buildSelectQuery(filter eventstore.Filter) (sqlQueryString, []any, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(es.eventTableName).
		Prepared(true).
		Select(colEventType, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Order(goqu.I(colSequenceNumber).Asc())

	selectStmt, whereErr := addWhereClause(filter, selectStmt)
	if whereErr != nil {
		return "", nil, whereErr
	}

	return selectStmt.ToSQL()
}

// buildInsertQuery inserts all events in one statement. The context CTE holds the current
// max sequence number of the filtered events, the insert selects nothing when it moved on.
func (es *EventStore) buildInsertQuery(
	events eventstore.StorableEvents,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (sqlQueryString, []any, error) {

	builder := goqu.Dialect(dialectPostgres)

	cteStmt, whereErr := addWhereClause(
		filter,
		builder.From(es.eventTableName).Select(goqu.MAX(colSequenceNumber).As(aliasMaxSeq)),
	)
	if whereErr != nil {
		return "", nil, whereErr
	}

	var valuesStmt *goqu.SelectDataset
	for _, event := range events {
		row := builder.Select(
			goqu.L(castText, event.EventType).As(colEventType),
			goqu.L(castTimestamp, event.OccurredAt).As(colOccurredAt),
			goqu.L(castJsonb, string(event.PayloadJSON)).As(colPayload),
			goqu.L(castJsonb, string(event.MetadataJSON)).As(colMetadata),
		)

		if valuesStmt == nil {
			valuesStmt = row
			continue
		}

		valuesStmt = valuesStmt.UnionAll(row)
	}

	insertStmt := builder.
		Insert(es.eventTableName).
		Prepared(true).
		With(cteContext, cteStmt).
		With(cteVals, valuesStmt).
		Cols(colEventType, colOccurredAt, colPayload, colMetadata).
		FromQuery(
			builder.
				From(cteContext, cteVals).
				Select(
					goqu.T(cteVals).Col(colEventType),
					goqu.T(cteVals).Col(colOccurredAt),
					goqu.T(cteVals).Col(colPayload),
					goqu.T(cteVals).Col(colMetadata),
				).
				Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(int64(expectedMaxSequenceNumber))), //nolint:gosec // sequence numbers fit into bigint
		)

	return insertStmt.ToSQL()
}

// addWhereClause ORs the filter items. Inside an item the event types are ORed, the
// predicates are ORed, and both groups are ANDed.
func addWhereClause(filter eventstore.Filter, stmt *goqu.SelectDataset) (*goqu.SelectDataset, error) {
	itemExpressions := make([]goqu.Expression, 0, len(filter.Items()))

	for _, item := range filter.Items() {
		itemExpression := goqu.And()

		if len(item.EventTypes()) > 0 {
			itemExpression = itemExpression.Append(goqu.C(colEventType).In(item.EventTypes()))
		}

		if len(item.Predicates()) > 0 {
			predicateExpressions := goqu.Or()

			for _, predicate := range item.Predicates() {
				predicateJSON, marshalErr := jsoniter.ConfigFastest.MarshalToString(
					map[string]string{predicate.Key(): predicate.Val()},
				)
				if marshalErr != nil {
					return nil, marshalErr
				}

				predicateExpressions = predicateExpressions.Append(goqu.L(payloadContains, predicateJSON))
			}

			itemExpression = itemExpression.Append(predicateExpressions)
		}

		if !itemExpression.IsEmpty() {
			itemExpressions = append(itemExpressions, itemExpression)
		}
	}

	if len(itemExpressions) == 0 {
		return stmt, nil
	}

	return stmt.Where(goqu.Or(itemExpressions...)), nil
}
