// Package library is the circulation desk: it owns the catalog and the reader registry
// and runs the borrow and return workflows on them.
//
// Business rule violations are reported as an Outcome, never as an error. Errors only
// come from the journal, when one is configured with WithJournal:
//
//	lib, _ := library.New(library.WithJournal(store))
//	outcome, err := lib.Borrow(ctx, 4711, "Dune")
//	if err != nil {
//		// the journal failed, nothing changed
//	}
//	fmt.Println(outcome.BorrowMessage())
//
// All methods are safe for concurrent use. Checking and borrowing a book happen under one
// lock, so two readers can never both borrow the same copy.
package library
