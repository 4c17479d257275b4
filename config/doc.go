// Package config wires the library to its environment: settings from LIBRARY_* variables,
// Postgres connections for the journal, OpenTelemetry providers and the catalog seed file.
package config
