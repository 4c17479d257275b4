// Package shell connects the pure circulation decisions in core to the journal:
// it maps domain events to storable events and back, builds event metadata, and
// retries appends that lost an optimistic concurrency race.
package shell
