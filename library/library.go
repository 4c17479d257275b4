package library

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/catalog"
	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/readers"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// Library owns one catalog and one reader registry.
type Library struct {
	mu      sync.Mutex
	catalog *catalog.Registry
	readers *readers.Registry

	borrowLimit   int
	journal       Journal
	retryOptions  []shell.RetryOption
	correlationID uuid.UUID
	now           func() time.Time

	catalogOptions  []catalog.Option
	registryOptions []readers.RegistryOption

	logger           eventstore.Logger
	contextualLogger eventstore.ContextualLogger
	metricsCollector eventstore.MetricsCollector
	tracingCollector eventstore.TracingCollector
}

// New creates a Library with an empty catalog and no readers.
func New(options ...Option) (*Library, error) {
	l := &Library{
		borrowLimit:   readers.MaxBorrowedBooks,
		correlationID: uuid.New(),
		now:           time.Now,
	}

	for _, option := range options {
		if err := option(l); err != nil {
			return nil, err
		}
	}

	index, err := catalog.NewIndex(l.catalogOptions...)
	if err != nil {
		return nil, err
	}

	registry, err := readers.NewRegistry(l.registryOptions...)
	if err != nil {
		return nil, err
	}

	l.catalog = catalog.NewRegistry(index)
	l.readers = registry

	return l, nil
}

// AddBook puts the book into the catalog, replacing a book with the same title.
// A nil book is ignored and reported as false.
func (l *Library) AddBook(ctx context.Context, book *catalog.Book) (bool, error) {
	if book == nil {
		return false, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ctx, span := l.startSpan(ctx, operationAddBook)

	event := core.BuildBookAddedToCatalog(book.Title(), book.Author(), book.ID(), book.IsAvailable(), l.now())
	if err := l.record(ctx, operationAddBook, event, bookFilter(book.Title())); err != nil {
		l.observeJournalFailure(ctx, span, operationAddBook, err)

		return false, err
	}

	added := l.catalog.AddBook(book)
	l.observeCatalogChange(ctx, span, operationAddBook, book.Title())

	return added, nil
}

// RemoveBook takes the book with this title out of the catalog and reports whether it was there.
// Readers holding the book keep their reference.
func (l *Library) RemoveBook(ctx context.Context, title string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, found := l.catalog.Search(title); !found {
		return false, nil
	}

	ctx, span := l.startSpan(ctx, operationRemoveBook)

	if err := l.record(ctx, operationRemoveBook, core.BuildBookRemovedFromCatalog(title, l.now()), bookFilter(title)); err != nil {
		l.observeJournalFailure(ctx, span, operationRemoveBook, err)

		return false, err
	}

	removed := l.catalog.RemoveBook(title)
	l.observeCatalogChange(ctx, span, operationRemoveBook, title)

	return removed, nil
}

// Search looks a book up by its exact title.
func (l *Library) Search(title string) (*catalog.Book, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.catalog.Search(title)
}

// Books lists the catalog sorted by title.
func (l *Library) Books() []*catalog.Book {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.catalog.Books()
}

// Register admits a new reader under a free random library ID.
func (l *Library) Register(ctx context.Context, name string) (*readers.Borrower, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if strings.TrimSpace(name) == "" {
		return nil, readers.ErrEmptyReaderName
	}

	id, err := l.readers.NextFreeID()
	if err != nil {
		return nil, err
	}

	ctx, span := l.startSpan(ctx, operationRegister)

	if err = l.record(ctx, operationRegister, core.BuildReaderRegistered(id, name, l.now()), readerFilter(id)); err != nil {
		l.observeJournalFailure(ctx, span, operationRegister, err)

		return nil, err
	}

	borrower := readers.BuildBorrower(id, name)
	if err = l.readers.Add(borrower); err != nil {
		l.finishSpan(span, statusError, map[string]string{attrError: err.Error()})

		return nil, err
	}

	l.observeRegistration(ctx, span, borrower)

	return borrower, nil
}

// FindReader looks a reader up by library ID.
func (l *Library) FindReader(readerID int) (*readers.Borrower, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.readers.FindByID(readerID)
}

// Readers lists all readers in registration order.
func (l *Library) Readers() []*readers.Borrower {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.readers.Borrowers()
}

// BorrowedBooks lists the books the reader holds, ordered by title.
func (l *Library) BorrowedBooks(readerID int) ([]*catalog.Book, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	borrower, found := l.readers.FindByID(readerID)
	if !found {
		return nil, false
	}

	return borrower.BorrowedBooks(), true
}

// Borrow lends the book with this title to the reader. Nothing changes unless the
// outcome is OutcomeOK. An error means the journal failed.
func (l *Library) Borrow(ctx context.Context, readerID int, title string) (Outcome, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	ctx, span := l.startSpan(ctx, operationBorrow)

	book, borrower, state := l.loanState(readerID, title)
	decision := DecideBorrow(state, title, readerID, l.now())

	if err := l.record(ctx, operationBorrow, decision.Event, loanFilter(title, readerID)); err != nil {
		l.observeJournalFailure(ctx, span, operationBorrow, err)

		return outcomeUnknown, err
	}

	if decision.IsSuccess() {
		borrower.AddBorrowedBook(book)
		book.SetAvailable(false)
	}

	outcome := OutcomeOf(decision)
	l.observeLoan(ctx, span, operationBorrow, outcome, readerID, title, decision.HasError(), time.Since(start))

	return outcome, nil
}

// Return takes the book back from the reader. Nothing changes unless the outcome
// is OutcomeOK. An error means the journal failed.
func (l *Library) Return(ctx context.Context, readerID int, title string) (Outcome, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	ctx, span := l.startSpan(ctx, operationReturn)

	book, borrower, state := l.loanState(readerID, title)
	decision := DecideReturn(state, title, readerID, l.now())

	if err := l.record(ctx, operationReturn, decision.Event, loanFilter(title, readerID)); err != nil {
		l.observeJournalFailure(ctx, span, operationReturn, err)

		return outcomeUnknown, err
	}

	if decision.IsSuccess() {
		borrower.RemoveBorrowedBook(book)
		book.SetAvailable(true)
	}

	outcome := OutcomeOf(decision)
	l.observeLoan(ctx, span, operationReturn, outcome, readerID, title, decision.HasError(), time.Since(start))

	return outcome, nil
}

// LoanHistory reads the reader's borrow and return events, failed requests included,
// back from the journal in the order they were recorded.
func (l *Library) LoanHistory(ctx context.Context, readerID int) (core.DomainEvents, error) {
	if l.journal == nil {
		return nil, ErrJournalNotConfigured
	}

	storableEvents, _, err := l.journal.Query(ctx, loanHistoryFilter(readerID))
	if err != nil {
		return nil, err
	}

	return shell.DomainEventsFrom(storableEvents)
}

// loanState must be called with l.mu held.
func (l *Library) loanState(readerID int, title string) (*catalog.Book, *readers.Borrower, LoanState) {
	book, bookFound := l.catalog.Search(title)
	borrower, readerFound := l.readers.FindByID(readerID)

	state := LoanState{
		BookFound:   bookFound && book != nil,
		ReaderFound: readerFound,
		BorrowLimit: l.borrowLimit,
	}

	if state.BookFound {
		state.BookAvailable = book.IsAvailable()
	}

	if state.ReaderFound {
		state.ReaderBookCount = borrower.BorrowedCount()
		state.ReaderHoldsBook = state.BookFound && borrower.HasBorrowedBook(book)
	}

	return book, borrower, state
}
