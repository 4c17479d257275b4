package adapters

import (
	"context"
	"database/sql"
)

// SQLAdapter runs statements on a database/sql handle (lib/pq or pgx stdlib driver).
type SQLAdapter struct {
	db *sql.DB
}

func NewSQLAdapter(db *sql.DB) SQLAdapter {
	return SQLAdapter{db: db}
}

func (a SQLAdapter) Query(ctx context.Context, query string, args ...any) (DBRows, error) {
	return stdQuery(ctx, a.db, query, args)
}

func (a SQLAdapter) Exec(ctx context.Context, query string, args ...any) (DBResult, error) {
	return stdExec(ctx, a.db, query, args)
}
