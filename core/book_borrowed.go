package core

import (
	"time"
)

// BookBorrowedEventType is the event type identifier.
const BookBorrowedEventType = "BookBorrowed"

// BookBorrowed represents when a reader took a book home.
type BookBorrowed struct {
	Title      TitleString
	ReaderID   ReaderIDString
	OccurredAt OccurredAt
}

// BuildBookBorrowed creates a new BookBorrowed event.
func BuildBookBorrowed(title TitleString, readerID ReaderIDInt, occurredAt time.Time) BookBorrowed {
	return BookBorrowed{
		Title:      title,
		ReaderID:   ToReaderIDString(readerID),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookBorrowed) EventType() EventTypeString {
	return BookBorrowedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookBorrowed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookBorrowed) IsErrorEvent() bool {
	return false
}
