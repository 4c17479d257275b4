package eventstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

func Test_FilterBuilder_MatchingAnyEvent(t *testing.T) {
	filter := eventstore.BuildEventFilter().MatchingAnyEvent()

	assert.Empty(t, filter.Items())
}

func Test_FilterBuilder_EventTypesAndPredicates(t *testing.T) {
	// act
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookReturned", "", "BookBorrowed", "BookReturned").
		AndAnyPredicateOf(
			eventstore.P("Title", "Dune"),
			eventstore.P("ReaderID", "4711"),
			eventstore.P("", "x"),
			eventstore.P("Title", ""),
			eventstore.P("ReaderID", "1234"),
			eventstore.P("Title", "Dune"),
		).
		Finalize()

	// assert
	assert.Len(t, filter.Items(), 1)
	item := filter.Items()[0]
	assert.Equal(t, []string{"BookBorrowed", "BookReturned"}, item.EventTypes())
	assert.Equal(
		t,
		[]eventstore.FilterPredicate{
			eventstore.P("ReaderID", "1234"),
			eventstore.P("ReaderID", "4711"),
			eventstore.P("Title", "Dune"),
		},
		item.Predicates(),
	)
}

func Test_FilterBuilder_PredicatesThenEventTypes(t *testing.T) {
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyPredicateOf(eventstore.P("Title", "Dune")).
		AndAnyEventTypeOf("BookAddedToCatalog").
		Finalize()

	assert.Len(t, filter.Items(), 1)
	assert.Equal(t, []string{"BookAddedToCatalog"}, filter.Items()[0].EventTypes())
	assert.Equal(t, []eventstore.FilterPredicate{eventstore.P("Title", "Dune")}, filter.Items()[0].Predicates())
}

func Test_FilterBuilder_OrMatching(t *testing.T) {
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookBorrowed").
		OrMatching().
		AnyPredicateOf(eventstore.P("ReaderID", "4711")).
		Finalize()

	assert.Len(t, filter.Items(), 2)
	assert.Equal(t, []string{"BookBorrowed"}, filter.Items()[0].EventTypes())
	assert.Empty(t, filter.Items()[0].Predicates())
	assert.Empty(t, filter.Items()[1].EventTypes())
	assert.Equal(t, []eventstore.FilterPredicate{eventstore.P("ReaderID", "4711")}, filter.Items()[1].Predicates())
}

func Test_FilterBuilder_StepsDoNotShareState(t *testing.T) {
	// arrange
	base := eventstore.BuildEventFilter().Matching().AnyEventTypeOf("BookBorrowed")

	// act
	first := base.AndAnyPredicateOf(eventstore.P("Title", "Dune")).Finalize()
	second := base.AndAnyPredicateOf(eventstore.P("Title", "Odyssey")).Finalize()

	// assert
	assert.Equal(t, []eventstore.FilterPredicate{eventstore.P("Title", "Dune")}, first.Items()[0].Predicates())
	assert.Equal(t, []eventstore.FilterPredicate{eventstore.P("Title", "Odyssey")}, second.Items()[0].Predicates())
}
