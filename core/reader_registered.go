package core

import (
	"time"
)

// ReaderRegisteredEventType is the event type identifier.
const ReaderRegisteredEventType = "ReaderRegistered"

// ReaderRegistered represents when a new reader is registered at the desk.
type ReaderRegistered struct {
	ReaderID   ReaderIDString
	Name       string
	OccurredAt OccurredAt
}

// BuildReaderRegistered creates a new ReaderRegistered event.
func BuildReaderRegistered(readerID ReaderIDInt, name string, occurredAt time.Time) ReaderRegistered {
	return ReaderRegistered{
		ReaderID:   ToReaderIDString(readerID),
		Name:       name,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReaderRegistered) EventType() EventTypeString {
	return ReaderRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReaderRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e ReaderRegistered) IsErrorEvent() bool {
	return false
}
