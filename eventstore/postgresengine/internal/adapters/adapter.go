package adapters

import (
	"context"
	"database/sql"
)

// DBAdapter is the part of a database handle the journal engine needs.
type DBAdapter interface {
	Query(ctx context.Context, query string, args ...any) (DBRows, error)
	Exec(ctx context.Context, query string, args ...any) (DBResult, error)
}

// DBRows iterates over a query result. Err must be checked once Next returned false.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult reports how many rows a statement changed.
type DBResult interface {
	RowsAffected() (int64, error)
}

// stdRows adapts *sql.Rows, shared by the database/sql and sqlx adapters.
type stdRows struct {
	rows *sql.Rows
}

func (r stdRows) Next() bool             { return r.rows.Next() }
func (r stdRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r stdRows) Err() error             { return r.rows.Err() }
func (r stdRows) Close() error           { return r.rows.Close() }

// stdQueryer is what *sql.DB and *sqlx.DB have in common.
type stdQueryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func stdQuery(ctx context.Context, db stdQueryer, query string, args []any) (DBRows, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return stdRows{rows: rows}, nil
}

func stdExec(ctx context.Context, db stdQueryer, query string, args []any) (DBResult, error) {
	return db.ExecContext(ctx, query, args...)
}
