// Package readers contains the registered readers of the library and the books each of
// them currently holds.
//
// A Borrower has a fixed number of slots (MaxBorrowedBooks). The Registry hands out random
// four-digit library IDs and finds readers by a linear scan.
package readers
