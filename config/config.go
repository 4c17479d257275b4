package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/catalog"
	"github.com/AntonStoeckl/library-circulation-go/readers"
)

const (
	EnvCatalogCapacity = "LIBRARY_CATALOG_CAPACITY"
	EnvBorrowLimit     = "LIBRARY_BORROW_LIMIT"
	EnvLogLevel        = "LIBRARY_LOG_LEVEL"
	EnvSeedFile        = "LIBRARY_SEED_FILE"
	EnvJournalDSN      = "LIBRARY_JOURNAL_DSN"
	EnvJournalDriver   = "LIBRARY_JOURNAL_DRIVER"
	EnvJournalTable    = "LIBRARY_JOURNAL_TABLE"
	EnvOTelEnabled     = "LIBRARY_OTEL_ENABLED"
	EnvOTelEndpoint    = "LIBRARY_OTEL_ENDPOINT"
)

// Journal drivers.
const (
	DriverPGX  = "pgx"
	DriverSQL  = "sql"
	DriverSQLX = "sqlx"
)

const (
	defaultJournalTable = "events"
	defaultOTelEndpoint = "localhost:4317"
)

var (
	// ErrInvalidSetting is returned when a variable cannot be parsed. The variable name is attached.
	ErrInvalidSetting = errors.New("invalid setting")

	// ErrInvalidCapacity is returned for a catalog capacity below 1.
	ErrInvalidCapacity = errors.New("catalog capacity must be positive")

	// ErrInvalidBorrowLimit is returned for a borrow limit outside [1, readers.MaxBorrowedBooks].
	ErrInvalidBorrowLimit = errors.New("borrow limit out of range")

	// ErrUnknownLogLevel is returned by ParseLogLevel.
	ErrUnknownLogLevel = errors.New("unknown log level")

	// ErrUnknownJournalDriver is returned for a driver other than pgx, sql or sqlx.
	ErrUnknownJournalDriver = errors.New("unknown journal driver")

	// ErrEmptyJournalTable is returned for a blank journal table name.
	ErrEmptyJournalTable = errors.New("journal table must not be empty")
)

// Config holds everything the desk needs at startup.
type Config struct {
	CatalogCapacity int
	BorrowLimit     int
	LogLevel        slog.Level
	SeedFile        string
	JournalDSN      string
	JournalDriver   string
	JournalTable    string
	OTelEnabled     bool
	OTelEndpoint    string
}

// Default returns the settings used when no variable is set.
func Default() Config {
	return Config{
		CatalogCapacity: catalog.DefaultCapacity,
		BorrowLimit:     readers.MaxBorrowedBooks,
		LogLevel:        slog.LevelInfo,
		JournalDriver:   DriverPGX,
		JournalTable:    defaultJournalTable,
		OTelEndpoint:    defaultOTelEndpoint,
	}
}

// Load reads the LIBRARY_* variables over the defaults and validates the result.
func Load() (Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom is Load with a custom lookup.
func LoadFrom(lookup func(key string) (string, bool)) (Config, error) {
	cfg, err := ParseFrom(lookup)
	if err != nil {
		return Config{}, err
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Parse reads the LIBRARY_* variables over the defaults without validating the result,
// so that callers can apply overrides before calling Validate.
func Parse() (Config, error) {
	return ParseFrom(os.LookupEnv)
}

// ParseFrom is Parse with a custom lookup. Only malformed values are errors.
func ParseFrom(lookup func(key string) (string, bool)) (Config, error) {
	cfg := Default()

	var err error

	if value, ok := lookup(EnvCatalogCapacity); ok {
		if cfg.CatalogCapacity, err = strconv.Atoi(strings.TrimSpace(value)); err != nil {
			return Config{}, invalid(EnvCatalogCapacity, err)
		}
	}

	if value, ok := lookup(EnvBorrowLimit); ok {
		if cfg.BorrowLimit, err = strconv.Atoi(strings.TrimSpace(value)); err != nil {
			return Config{}, invalid(EnvBorrowLimit, err)
		}
	}

	if value, ok := lookup(EnvLogLevel); ok {
		if cfg.LogLevel, err = ParseLogLevel(value); err != nil {
			return Config{}, invalid(EnvLogLevel, err)
		}
	}

	if value, ok := lookup(EnvOTelEnabled); ok {
		if cfg.OTelEnabled, err = strconv.ParseBool(strings.TrimSpace(value)); err != nil {
			return Config{}, invalid(EnvOTelEnabled, err)
		}
	}

	if value, ok := lookup(EnvSeedFile); ok {
		cfg.SeedFile = strings.TrimSpace(value)
	}

	if value, ok := lookup(EnvJournalDSN); ok {
		cfg.JournalDSN = strings.TrimSpace(value)
	}

	if value, ok := lookup(EnvJournalDriver); ok {
		cfg.JournalDriver = strings.ToLower(strings.TrimSpace(value))
	}

	if value, ok := lookup(EnvJournalTable); ok {
		cfg.JournalTable = strings.TrimSpace(value)
	}

	if value, ok := lookup(EnvOTelEndpoint); ok && strings.TrimSpace(value) != "" {
		cfg.OTelEndpoint = strings.TrimSpace(value)
	}

	return cfg, nil
}

// Validate checks the settings that cannot be checked while parsing.
func (c Config) Validate() error {
	if c.CatalogCapacity <= 0 {
		return ErrInvalidCapacity
	}

	if c.BorrowLimit < 1 || c.BorrowLimit > readers.MaxBorrowedBooks {
		return ErrInvalidBorrowLimit
	}

	switch c.JournalDriver {
	case DriverPGX, DriverSQL, DriverSQLX:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownJournalDriver, c.JournalDriver)
	}

	if c.JournalTable == "" {
		return ErrEmptyJournalTable
	}

	return nil
}

// JournalEnabled reports whether a journal DSN is configured.
func (c Config) JournalEnabled() bool {
	return c.JournalDSN != ""
}

// ParseLogLevel accepts debug, info, warn or error in any case.
func ParseLogLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLogLevel, value)
	}

	return level, nil
}

func invalid(key string, err error) error {
	return errors.Join(fmt.Errorf("%w: %s", ErrInvalidSetting, key), err)
}
