// Package eventstore holds the storage-agnostic pieces of the circulation journal:
// the StorableEvent DTO, the Filter used to select a slice of the journal, the
// journal errors and the observability interfaces the engines report through.
//
// A typical append guarded by the events it was decided on:
//
//	filter := eventstore.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(core.BookBorrowedEventType, core.BookReturnedEventType).
//		AndAnyPredicateOf(eventstore.P("Title", "Dune")).
//		Finalize()
//
//	_, maxSeq, err := store.Query(ctx, filter)
//	if err != nil {
//		return err
//	}
//
//	err = store.Append(ctx, filter, maxSeq, storableEvent)
//	if errors.Is(err, eventstore.ErrConcurrencyConflict) {
//		// somebody else appended a matching event in between, query again
//	}
package eventstore
