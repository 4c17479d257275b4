package library

// Outcome is the business result of a borrow or return request.
type Outcome int

const (
	outcomeUnknown Outcome = iota
	OutcomeOK
	OutcomeBookUnavailable
	OutcomeLimitReached
	OutcomeNotFound
	OutcomeNotBorrowed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeBookUnavailable:
		return "book-unavailable"
	case OutcomeLimitReached:
		return "limit-reached"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeNotBorrowed:
		return "not-borrowed"
	default:
		return "unknown"
	}
}

// BorrowMessage is what the desk prints after a borrow request.
func (o Outcome) BorrowMessage() string {
	switch o {
	case OutcomeOK:
		return "Book borrowed successfully."
	case OutcomeBookUnavailable:
		return "Sorry, the book is not available for borrowing."
	case OutcomeLimitReached:
		return "You have already borrowed the maximum number of books."
	case OutcomeNotFound:
		return "Invalid library ID or book title."
	default:
		return "The request could not be processed."
	}
}

// ReturnMessage is what the desk prints after a return request.
func (o Outcome) ReturnMessage() string {
	switch o {
	case OutcomeOK:
		return "Book returned successfully."
	case OutcomeNotBorrowed:
		return "You have not borrowed this book."
	case OutcomeNotFound:
		return "Invalid library ID or book ID."
	default:
		return "The request could not be processed."
	}
}
