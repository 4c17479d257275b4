package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/catalog"
	"github.com/AntonStoeckl/library-circulation-go/config"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/oteladapters"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/postgresengine"
	"github.com/AntonStoeckl/library-circulation-go/library"
)

const (
	flagCapacity      = "capacity"
	flagBorrowLimit   = "borrow-limit"
	flagLogLevel      = "log-level"
	flagSeedFile      = "seed-file"
	flagJournalDSN    = "journal-dsn"
	flagJournalDriver = "journal-driver"
	flagJournalTable  = "journal-table"
	flagOTel          = "otel"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "library",
		Short:         "Library circulation desk",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.Int(flagCapacity, catalog.DefaultCapacity, "number of catalog buckets")
	flags.Int(flagBorrowLimit, 0, "books a reader may hold, at most 5 (default from env or 5)")
	flags.String(flagLogLevel, "", "debug, info, warn or error")
	flags.String(flagSeedFile, "", "YAML file with the initial catalog, the sample books when empty")
	flags.String(flagJournalDSN, "", "Postgres DSN of the journal, no journal when empty")
	flags.String(flagJournalDriver, "", "pgx, sql or sqlx")
	flags.String(flagJournalTable, "", "journal table name")
	flags.Bool(flagOTel, false, "export traces and metrics over OTLP")

	root.AddCommand(newSessionCommand(), newCatalogCommand())

	return root
}

func newSessionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Read desk commands from stdin until exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := openDesk(cmd)
			if err != nil {
				return err
			}
			defer d.close()

			return NewSession(d.library, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
}

func newCatalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the seeded catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := openDesk(cmd)
			if err != nil {
				return err
			}
			defer d.close()

			printCatalog(cmd.OutOrStdout(), d.library.Books())

			return nil
		},
	}
}

// loadConfig reads the environment and lets explicitly set flags win.
// The merged result is validated once.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Parse()
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()

	if flags.Changed(flagCapacity) {
		cfg.CatalogCapacity, _ = flags.GetInt(flagCapacity)
	}

	if flags.Changed(flagBorrowLimit) {
		cfg.BorrowLimit, _ = flags.GetInt(flagBorrowLimit)
	}

	if flags.Changed(flagLogLevel) {
		value, _ := flags.GetString(flagLogLevel)
		if cfg.LogLevel, err = config.ParseLogLevel(value); err != nil {
			return config.Config{}, err
		}
	}

	if flags.Changed(flagSeedFile) {
		cfg.SeedFile, _ = flags.GetString(flagSeedFile)
	}

	if flags.Changed(flagJournalDSN) {
		cfg.JournalDSN, _ = flags.GetString(flagJournalDSN)
	}

	if flags.Changed(flagJournalDriver) {
		cfg.JournalDriver, _ = flags.GetString(flagJournalDriver)
	}

	if flags.Changed(flagJournalTable) {
		cfg.JournalTable, _ = flags.GetString(flagJournalTable)
	}

	if flags.Changed(flagOTel) {
		cfg.OTelEnabled, _ = flags.GetBool(flagOTel)
	}

	return cfg, cfg.Validate()
}

type desk struct {
	library *library.Library
	closers []func()
}

func (d *desk) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

func openDesk(cmd *cobra.Command) (*desk, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return buildDesk(ctx, cfg, cmd.ErrOrStderr())
}

// buildDesk assembles the library from the config. Logs go to logOut.
func buildDesk(ctx context.Context, cfg config.Config, logOut io.Writer) (*desk, error) {
	d := &desk{}

	logger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.LogLevel}),
	)

	options := []library.Option{
		library.WithCatalogOptions(catalog.WithCapacity(cfg.CatalogCapacity)),
		library.WithBorrowLimit(cfg.BorrowLimit),
		library.WithContextualLogger(logger),
	}
	journalOptions := []postgresengine.Option{postgresengine.WithContextualLogger(logger)}

	if cfg.OTelEnabled {
		providers, err := config.NewObservabilityProviders(ctx, cfg, version)
		if err != nil {
			return nil, err
		}

		d.closers = append(d.closers, func() {
			if shutdownErr := providers.Shutdown(); shutdownErr != nil {
				logger.ErrorContext(ctx, "observability shutdown failed", "error", shutdownErr.Error())
			}
		})

		metrics := oteladapters.NewMetricsCollector(providers.MeterProvider.Meter(config.InstrumentationName))
		tracing := oteladapters.NewTracingCollector(providers.TracerProvider.Tracer(config.InstrumentationName))

		options = append(options, library.WithMetrics(metrics), library.WithTracing(tracing))
		journalOptions = append(journalOptions, postgresengine.WithMetrics(metrics), postgresengine.WithTracing(tracing))
	}

	if cfg.JournalEnabled() {
		journal, closeJournal, err := config.OpenJournal(ctx, cfg, journalOptions...)
		if err != nil {
			d.close()

			return nil, err
		}

		d.closers = append(d.closers, closeJournal)
		options = append(options, library.WithJournal(journal))
	}

	lib, err := library.New(options...)
	if err != nil {
		d.close()

		return nil, err
	}

	books, err := config.LoadSeedFile(cfg.SeedFile)
	if err != nil {
		d.close()

		return nil, err
	}

	for _, book := range books {
		if _, err = lib.AddBook(ctx, book); err != nil {
			d.close()

			return nil, errors.Join(fmt.Errorf("seeding %q failed", book.Title()), err)
		}
	}

	d.library = lib

	return d, nil
}

func printCatalog(out io.Writer, books []*catalog.Book) {
	for _, book := range books {
		fmt.Fprintln(out, book)
	}

	fmt.Fprintf(out, "%d books in the catalog\n", len(books))
}
