package core

import (
	"time"
)

// BookReturnedEventType is the event type identifier.
const BookReturnedEventType = "BookReturned"

// BookReturned represents when a reader brought a book back.
type BookReturned struct {
	Title      TitleString
	ReaderID   ReaderIDString
	OccurredAt OccurredAt
}

// BuildBookReturned creates a new BookReturned event.
func BuildBookReturned(title TitleString, readerID ReaderIDInt, occurredAt time.Time) BookReturned {
	return BookReturned{
		Title:      title,
		ReaderID:   ToReaderIDString(readerID),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookReturned) EventType() EventTypeString {
	return BookReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookReturned) IsErrorEvent() bool {
	return false
}
