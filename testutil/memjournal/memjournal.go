// Package memjournal is an in-memory stand-in for postgresengine.EventStore in tests.
//
// Filters are evaluated the way the Postgres engine evaluates them: an event matches a filter
// item when its type is one of the item's types (if any) and its payload contains at least one
// of the item's predicates (if any) as a top-level string field. Items are ORed.
package memjournal

import (
	"context"
	"slices"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

type entry struct {
	sequenceNumber eventstore.MaxSequenceNumberUint
	event          eventstore.StorableEvent
}

// Journal stores appended events in memory and enforces the expected max sequence number.
type Journal struct {
	mu      sync.Mutex
	entries []entry

	queryErr    error
	appendErrs  []error
	conflicts   int
	appendCalls int
}

// New creates an empty Journal.
func New() *Journal {
	return &Journal{entries: make([]entry, 0)}
}

// FailQueries makes every following Query return err, nil restores normal behavior.
func (j *Journal) FailQueries(err error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.queryErr = err
}

// FailNextAppends makes the next len(errs) Append calls return these errors in order.
func (j *Journal) FailNextAppends(errs ...error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.appendErrs = append(j.appendErrs, errs...)
}

// ConflictOnNextAppends makes the next n Append calls fail with ErrConcurrencyConflict
// as if another writer got in between.
func (j *Journal) ConflictOnNextAppends(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.conflicts += n
}

func (j *Journal) Query(_ context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.queryErr != nil {
		return nil, 0, j.queryErr
	}

	events, maxSequenceNumber := j.matching(filter)

	return events, maxSequenceNumber, nil
}

func (j *Journal) Append(
	_ context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	j.mu.Lock()
	defer j.mu.Unlock()

	j.appendCalls++

	if len(j.appendErrs) > 0 {
		err := j.appendErrs[0]
		j.appendErrs = j.appendErrs[1:]

		return err
	}

	if j.conflicts > 0 {
		j.conflicts--

		return eventstore.ErrConcurrencyConflict
	}

	if _, maxSequenceNumber := j.matching(filter); maxSequenceNumber != expectedMaxSequenceNumber {
		return eventstore.ErrConcurrencyConflict
	}

	for _, e := range append([]eventstore.StorableEvent{event}, additionalEvents...) {
		j.entries = append(j.entries, entry{
			sequenceNumber: eventstore.MaxSequenceNumberUint(len(j.entries) + 1),
			event:          e,
		})
	}

	return nil
}

// Events returns everything appended so far in sequence order.
func (j *Journal) Events() eventstore.StorableEvents {
	j.mu.Lock()
	defer j.mu.Unlock()

	events := make(eventstore.StorableEvents, 0, len(j.entries))
	for _, e := range j.entries {
		events = append(events, e.event)
	}

	return events
}

// EventTypes returns the types of all appended events in sequence order.
func (j *Journal) EventTypes() []string {
	events := j.Events()
	types := make([]string, 0, len(events))

	for _, e := range events {
		types = append(types, e.EventType)
	}

	return types
}

// AppendCalls counts Append calls including the failed ones.
func (j *Journal) AppendCalls() int {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.appendCalls
}

func (j *Journal) matching(filter eventstore.Filter) (eventstore.StorableEvents, eventstore.MaxSequenceNumberUint) {
	events := make(eventstore.StorableEvents, 0)
	var maxSequenceNumber eventstore.MaxSequenceNumberUint

	for _, e := range j.entries {
		if !matches(filter, e.event) {
			continue
		}

		events = append(events, e.event)
		maxSequenceNumber = e.sequenceNumber
	}

	return events, maxSequenceNumber
}

func matches(filter eventstore.Filter, event eventstore.StorableEvent) bool {
	items := filter.Items()
	if len(items) == 0 {
		return true
	}

	var payload map[string]any
	if err := jsoniter.ConfigFastest.Unmarshal(event.PayloadJSON, &payload); err != nil {
		return false
	}

	for _, item := range items {
		if matchesItem(item, event.EventType, payload) {
			return true
		}
	}

	return false
}

func matchesItem(item eventstore.FilterItem, eventType string, payload map[string]any) bool {
	if types := item.EventTypes(); len(types) > 0 && !slices.Contains(types, eventType) {
		return false
	}

	predicates := item.Predicates()
	if len(predicates) == 0 {
		return true
	}

	for _, predicate := range predicates {
		if val, ok := payload[predicate.Key()].(string); ok && val == predicate.Val() {
			return true
		}
	}

	return false
}
