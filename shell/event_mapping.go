package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

var (
	ErrMappingToStorableEventFailed         = errors.New("mapping to storable event failed")
	ErrMappingToDomainEventFailed           = errors.New("mapping to domain event failed")
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// StorableEventFrom serializes the domain event and its metadata.
func StorableEventFrom(event core.DomainEvent, metadata EventMetadata) (eventstore.StorableEvent, error) {
	payloadJSON, err := jsoniter.ConfigFastest.Marshal(event)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailed, err)
	}

	metadataJSON, err := jsoniter.ConfigFastest.Marshal(metadata)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailed, err)
	}

	storableEvent, err := eventstore.BuildStorableEvent(event.EventType(), event.HasOccurredAt(), payloadJSON, metadataJSON)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailed, err)
	}

	return storableEvent, nil
}

// DomainEventsFrom maps a journal slice back to domain events, in order.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom maps one storable event back to its domain event by event type.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.BookAddedToCatalogEventType:
		return unmarshalInto[core.BookAddedToCatalog](storableEvent.PayloadJSON)

	case core.BookRemovedFromCatalogEventType:
		return unmarshalInto[core.BookRemovedFromCatalog](storableEvent.PayloadJSON)

	case core.ReaderRegisteredEventType:
		return unmarshalInto[core.ReaderRegistered](storableEvent.PayloadJSON)

	case core.BookBorrowedEventType:
		return unmarshalInto[core.BookBorrowed](storableEvent.PayloadJSON)

	case core.BorrowingBookFailedEventType:
		return unmarshalInto[core.BorrowingBookFailed](storableEvent.PayloadJSON)

	case core.BookReturnedEventType:
		return unmarshalInto[core.BookReturned](storableEvent.PayloadJSON)

	case core.ReturningBookFailedEventType:
		return unmarshalInto[core.ReturningBookFailed](storableEvent.PayloadJSON)

	default:
		return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
	}
}

func unmarshalInto[T core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var event T

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}
