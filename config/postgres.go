package config

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver

	"github.com/AntonStoeckl/library-circulation-go/eventstore/postgresengine"
)

// A desk issues one journal write at a time, so the pools stay small.
const (
	maxOpenConnections = 10
	minConnections     = 1
	maxIdleConnections = 2
	maxConnLifetime    = time.Hour
	maxConnIdleTime    = time.Minute * 5
	healthCheckPeriod  = time.Minute
	connectTimeout     = time.Second * 5

	postgresDriverName = "postgres"
)

var (
	// ErrJournalNotEnabled is returned by OpenJournal when no DSN is configured.
	ErrJournalNotEnabled = errors.New("journal dsn is not configured")

	// ErrOpeningJournalFailed wraps every connection or ping failure.
	ErrOpeningJournalFailed = errors.New("opening journal database failed")
)

// PGXPoolConfig parses the DSN and applies the pool sizing.
func PGXPoolConfig(dsn string) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Join(ErrOpeningJournalFailed, err)
	}

	poolConfig.MaxConns = maxOpenConnections
	poolConfig.MinConns = minConnections
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	return poolConfig, nil
}

// OpenSQLDB opens a lazily connecting *sql.DB with lib/pq.
func OpenSQLDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open(postgresDriverName, dsn)
	if err != nil {
		return nil, errors.Join(ErrOpeningJournalFailed, err)
	}

	configureSQLPool(db)

	return db, nil
}

// OpenSQLX opens a lazily connecting *sqlx.DB with lib/pq.
func OpenSQLX(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(postgresDriverName, dsn)
	if err != nil {
		return nil, errors.Join(ErrOpeningJournalFailed, err)
	}

	configureSQLPool(db.DB)

	return db, nil
}

func configureSQLPool(db *sql.DB) {
	db.SetMaxOpenConns(maxOpenConnections)
	db.SetMaxIdleConns(maxIdleConnections)
	db.SetConnMaxLifetime(maxConnLifetime)
	db.SetConnMaxIdleTime(maxConnIdleTime)
}

// OpenJournal connects to Postgres with the configured driver, pings it and returns the
// event store together with a function that closes the connection.
func OpenJournal(
	ctx context.Context,
	cfg Config,
	options ...postgresengine.Option,
) (*postgresengine.EventStore, func(), error) {

	if !cfg.JournalEnabled() {
		return nil, nil, ErrJournalNotEnabled
	}

	options = append([]postgresengine.Option{postgresengine.WithTableName(cfg.JournalTable)}, options...)

	switch cfg.JournalDriver {
	case DriverSQL:
		db, err := OpenSQLDB(cfg.JournalDSN)
		if err != nil {
			return nil, nil, err
		}

		return finishOpening(ctx, db.PingContext, func() { _ = db.Close() }, func() (*postgresengine.EventStore, error) {
			return postgresengine.NewEventStoreFromSQLDB(db, options...)
		})

	case DriverSQLX:
		db, err := OpenSQLX(cfg.JournalDSN)
		if err != nil {
			return nil, nil, err
		}

		return finishOpening(ctx, db.PingContext, func() { _ = db.Close() }, func() (*postgresengine.EventStore, error) {
			return postgresengine.NewEventStoreFromSQLX(db, options...)
		})

	default:
		poolConfig, err := PGXPoolConfig(cfg.JournalDSN)
		if err != nil {
			return nil, nil, err
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, nil, errors.Join(ErrOpeningJournalFailed, err)
		}

		return finishOpening(ctx, pool.Ping, pool.Close, func() (*postgresengine.EventStore, error) {
			return postgresengine.NewEventStoreFromPGXPool(pool, options...)
		})
	}
}

func finishOpening(
	ctx context.Context,
	ping func(context.Context) error,
	closeDB func(),
	build func() (*postgresengine.EventStore, error),
) (*postgresengine.EventStore, func(), error) {

	if err := ping(ctx); err != nil {
		closeDB()

		return nil, nil, errors.Join(ErrOpeningJournalFailed, err)
	}

	store, err := build()
	if err != nil {
		closeDB()

		return nil, nil, err
	}

	return store, closeDB, nil
}
