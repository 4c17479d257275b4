package core

import (
	"time"
)

// ReturningBookFailedEventType is the event type identifier.
const ReturningBookFailedEventType = "ReturningBookFailed"

// ReturningBookFailed represents when a return request was rejected by a business rule.
type ReturningBookFailed struct {
	Title       TitleString
	ReaderID    ReaderIDString
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildReturningBookFailed creates a new ReturningBookFailed event.
func BuildReturningBookFailed(
	title TitleString,
	readerID ReaderIDInt,
	failureInfo string,
	occurredAt time.Time,
) ReturningBookFailed {

	return ReturningBookFailed{
		Title:       title,
		ReaderID:    ToReaderIDString(readerID),
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReturningBookFailed) EventType() EventTypeString {
	return ReturningBookFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReturningBookFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected request.
func (e ReturningBookFailed) IsErrorEvent() bool {
	return true
}
