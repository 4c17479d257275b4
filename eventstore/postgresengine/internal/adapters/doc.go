// Package adapters lets the journal engine talk to pgxpool.Pool, sql.DB and sqlx.DB
// through one small DBAdapter interface. All statements are sent with positional
// arguments ($1, $2, ...).
package adapters
