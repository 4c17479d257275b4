package library

import (
	"errors"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/core"
)

const (
	failureReasonNotFound        = "reader or book not found"
	failureReasonBookUnavailable = "book is not available"
	failureReasonLimitReached    = "reader has reached the borrow limit"
	failureReasonNotBorrowed     = "book is not borrowed by this reader"
)

// Failure reasons carried by BorrowingBookFailed and ReturningBookFailed.
var (
	// ErrReaderOrBookNotFound means the reader or the title is unknown.
	ErrReaderOrBookNotFound = errors.New(failureReasonNotFound)

	// ErrBookUnavailable means the book is on loan.
	ErrBookUnavailable = errors.New(failureReasonBookUnavailable)

	// ErrBorrowLimitReached means the reader already holds the maximum number of books.
	ErrBorrowLimitReached = errors.New(failureReasonLimitReached)

	// ErrBookNotBorrowed means the reader does not hold this book.
	ErrBookNotBorrowed = errors.New(failureReasonNotBorrowed)
)

// LoanState is what a borrow or return decision looks at.
type LoanState struct {
	BookFound       bool
	BookAvailable   bool
	ReaderFound     bool
	ReaderBookCount int
	ReaderHoldsBook bool
	BorrowLimit     int
}

// DecideBorrow applies the lending rules:
//
//	ERROR: "reader or book not found" if either lookup missed
//	ERROR: "book is not available" if the copy is on loan
//	ERROR: "reader has reached the borrow limit" if the reader holds BorrowLimit books
//	else BookBorrowed
func DecideBorrow(s LoanState, title core.TitleString, readerID core.ReaderIDInt, now time.Time) core.DecisionResult {
	fail := func(reason string, err error) core.DecisionResult {
		return core.ErrorDecision(core.BuildBorrowingBookFailed(title, readerID, reason, now), err)
	}

	if !s.BookFound || !s.ReaderFound {
		return fail(failureReasonNotFound, ErrReaderOrBookNotFound)
	}

	if !s.BookAvailable {
		return fail(failureReasonBookUnavailable, ErrBookUnavailable)
	}

	if s.ReaderBookCount >= s.BorrowLimit {
		return fail(failureReasonLimitReached, ErrBorrowLimitReached)
	}

	return core.SuccessDecision(core.BuildBookBorrowed(title, readerID, now))
}

// DecideReturn applies the return rules:
//
//	ERROR: "reader or book not found" if either lookup missed
//	ERROR: "book is not borrowed by this reader" unless the reader holds exactly this copy
//	else BookReturned
func DecideReturn(s LoanState, title core.TitleString, readerID core.ReaderIDInt, now time.Time) core.DecisionResult {
	fail := func(reason string, err error) core.DecisionResult {
		return core.ErrorDecision(core.BuildReturningBookFailed(title, readerID, reason, now), err)
	}

	if !s.BookFound || !s.ReaderFound {
		return fail(failureReasonNotFound, ErrReaderOrBookNotFound)
	}

	if !s.ReaderHoldsBook {
		return fail(failureReasonNotBorrowed, ErrBookNotBorrowed)
	}

	return core.SuccessDecision(core.BuildBookReturned(title, readerID, now))
}

// OutcomeOf maps a decision to the Outcome reported to the desk.
func OutcomeOf(result core.DecisionResult) Outcome {
	err := result.HasError()

	switch {
	case result.IsSuccess():
		return OutcomeOK
	case errors.Is(err, ErrReaderOrBookNotFound):
		return OutcomeNotFound
	case errors.Is(err, ErrBookUnavailable):
		return OutcomeBookUnavailable
	case errors.Is(err, ErrBorrowLimitReached):
		return OutcomeLimitReached
	case errors.Is(err, ErrBookNotBorrowed):
		return OutcomeNotBorrowed
	default:
		return outcomeUnknown
	}
}
