// Package postgresengine stores the circulation journal in a PostgreSQL table.
//
// The engine works with pgxpool.Pool, sql.DB or sqlx.DB:
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	store, _ := postgresengine.NewEventStoreFromPGXPool(
//		pool,
//		postgresengine.WithTableName("events"),
//		postgresengine.WithLogger(slog.Default()),
//	)
//
//	events, maxSeq, _ := store.Query(ctx, filter)
//	err := store.Append(ctx, filter, maxSeq, newEvent)
//
// Append only inserts when the highest sequence number among the events selected by
// the filter still equals maxSeq, otherwise it returns eventstore.ErrConcurrencyConflict.
//
// Expected table layout:
//
//	CREATE TABLE events (
//		sequence_number BIGSERIAL PRIMARY KEY,
//		event_type      TEXT        NOT NULL,
//		occurred_at     TIMESTAMPTZ NOT NULL,
//		payload         JSONB       NOT NULL,
//		metadata        JSONB       NOT NULL
//	);
//	CREATE INDEX events_payload_idx ON events USING GIN (payload jsonb_path_ops);
package postgresengine
