// Package core contains the domain events of the circulation desk and the result type of
// business decisions.
//
// Events describe what happened at the desk (a book was added to the catalog, a reader
// borrowed a book, returning a book failed, ...) rather than generic create/update
// operations. Failure events carry the failure reason so that rejected requests show up in
// the journal as well.
//
// The package has no dependencies on storage or transport; the shell package maps the
// events to and from the journal format.
package core
