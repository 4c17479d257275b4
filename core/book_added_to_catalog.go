package core

import (
	"time"
)

// BookAddedToCatalogEventType is the event type identifier.
const BookAddedToCatalogEventType = "BookAddedToCatalog"

// BookAddedToCatalog represents when a book was put into the catalog (or replaced one with the same title).
type BookAddedToCatalog struct {
	Title      TitleString
	Author     string
	BookID     int
	Available  bool
	OccurredAt OccurredAt
}

// BuildBookAddedToCatalog creates a new BookAddedToCatalog event.
func BuildBookAddedToCatalog(
	title TitleString,
	author string,
	bookID int,
	available bool,
	occurredAt time.Time,
) BookAddedToCatalog {

	return BookAddedToCatalog{
		Title:      title,
		Author:     author,
		BookID:     bookID,
		Available:  available,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookAddedToCatalog) EventType() EventTypeString {
	return BookAddedToCatalogEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookAddedToCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookAddedToCatalog) IsErrorEvent() bool {
	return false
}
