package core

import (
	"strconv"
	"time"
)

// EventTypeString is the type identifier of a domain event.
type EventTypeString = string

// TitleString is the catalog key of a book.
type TitleString = string

// ReaderIDInt is the numeric library ID of a reader.
type ReaderIDInt = int

// OccurredAt represents when an event occurred.
type OccurredAt = time.Time

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision,
// matching what Postgres stores.
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}

// ReaderIDString is the library ID of a reader as it appears in event payloads.
type ReaderIDString = string

// ToReaderIDString renders a library ID for event payloads and journal predicates.
func ToReaderIDString(id ReaderIDInt) ReaderIDString {
	return strconv.Itoa(id)
}
