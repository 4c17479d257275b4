package core

import (
	"time"
)

// BorrowingBookFailedEventType is the event type identifier.
const BorrowingBookFailedEventType = "BorrowingBookFailed"

// BorrowingBookFailed represents when a borrow request was rejected by a business rule.
type BorrowingBookFailed struct {
	Title       TitleString
	ReaderID    ReaderIDString
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildBorrowingBookFailed creates a new BorrowingBookFailed event.
func BuildBorrowingBookFailed(
	title TitleString,
	readerID ReaderIDInt,
	failureInfo string,
	occurredAt time.Time,
) BorrowingBookFailed {

	return BorrowingBookFailed{
		Title:       title,
		ReaderID:    ToReaderIDString(readerID),
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BorrowingBookFailed) EventType() EventTypeString {
	return BorrowingBookFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BorrowingBookFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected request.
func (e BorrowingBookFailed) IsErrorEvent() bool {
	return true
}
