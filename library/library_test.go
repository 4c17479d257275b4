package library_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/catalog"
	"github.com/AntonStoeckl/library-circulation-go/library"
	"github.com/AntonStoeckl/library-circulation-go/readers"
)

func Test_BorrowAndReturn_Dune(t *testing.T) {
	// arrange
	ctx := context.Background()
	lib := givenLibrary(t)
	dune := givenBook(t, lib, "Dune")
	ada := givenReader(t, lib, "Ada")
	grace := givenReader(t, lib, "Grace")

	// act / assert
	outcome, err := lib.Borrow(ctx, ada.ID(), "Dune")
	require.NoError(t, err)
	assert.Equal(t, library.OutcomeOK, outcome)
	assert.False(t, dune.IsAvailable())
	assert.True(t, ada.HasBorrowedBook(dune))

	outcome, err = lib.Borrow(ctx, grace.ID(), "Dune")
	require.NoError(t, err)
	assert.Equal(t, library.OutcomeBookUnavailable, outcome)
	assert.Equal(t, 0, grace.BorrowedCount())

	outcome, err = lib.Return(ctx, ada.ID(), "Dune")
	require.NoError(t, err)
	assert.Equal(t, library.OutcomeOK, outcome)
	assert.True(t, dune.IsAvailable())
	assert.Equal(t, 0, ada.BorrowedCount())
}

func Test_Borrow_CollidingTitles(t *testing.T) {
	// arrange
	ctx := context.Background()
	lib := givenLibrary(t, library.WithCatalogOptions(catalog.WithCapacity(7)))
	aa := givenBook(t, lib, "Aa")
	bb := givenBook(t, lib, "BB")
	ada := givenReader(t, lib, "Ada")

	// act
	outcome, err := lib.Borrow(ctx, ada.ID(), "BB")

	// assert
	require.NoError(t, err)
	assert.Equal(t, library.OutcomeOK, outcome)
	assert.True(t, aa.IsAvailable())
	assert.False(t, bb.IsAvailable())

	found, exists := lib.Search("Aa")
	assert.True(t, exists)
	assert.Same(t, aa, found)
}

func Test_Borrow_LimitReached(t *testing.T) {
	// arrange
	ctx := context.Background()
	lib := givenLibrary(t)
	givenSampleCatalog(t, lib)
	ada := givenReader(t, lib, "Ada")

	books := availableBooks(lib)
	require.Greater(t, len(books), readers.MaxBorrowedBooks)

	for _, book := range books[:readers.MaxBorrowedBooks] {
		outcome, err := lib.Borrow(ctx, ada.ID(), book.Title())
		require.NoError(t, err)
		require.Equal(t, library.OutcomeOK, outcome)
	}

	extra := books[readers.MaxBorrowedBooks]
	before := ada.BorrowedBooks()

	// act
	outcome, err := lib.Borrow(ctx, ada.ID(), extra.Title())

	// assert
	require.NoError(t, err)
	assert.Equal(t, library.OutcomeLimitReached, outcome)
	assert.True(t, extra.IsAvailable())
	assert.Equal(t, before, ada.BorrowedBooks())
}

func Test_Borrow_LoweredLimit(t *testing.T) {
	ctx := context.Background()
	lib := givenLibrary(t, library.WithBorrowLimit(1))
	givenBook(t, lib, "Dune")
	givenBook(t, lib, "Emma")
	ada := givenReader(t, lib, "Ada")

	first, err := lib.Borrow(ctx, ada.ID(), "Dune")
	require.NoError(t, err)
	second, err := lib.Borrow(ctx, ada.ID(), "Emma")
	require.NoError(t, err)

	assert.Equal(t, library.OutcomeOK, first)
	assert.Equal(t, library.OutcomeLimitReached, second)
}

func Test_Borrow_NotFound(t *testing.T) {
	// arrange
	ctx := context.Background()
	lib := givenLibrary(t)
	dune := givenBook(t, lib, "Dune")
	ada := givenReader(t, lib, "Ada")

	// act
	unknownReader, err := lib.Borrow(ctx, 999, "Dune")
	require.NoError(t, err)
	unknownTitle, err := lib.Borrow(ctx, ada.ID(), "dune")
	require.NoError(t, err)

	// assert
	assert.Equal(t, library.OutcomeNotFound, unknownReader)
	assert.Equal(t, library.OutcomeNotFound, unknownTitle)
	assert.True(t, dune.IsAvailable())
	assert.Equal(t, 0, ada.BorrowedCount())
}

func Test_Return_NotBorrowed(t *testing.T) {
	// arrange
	ctx := context.Background()
	lib := givenLibrary(t)
	dune := givenBook(t, lib, "Dune")
	ada := givenReader(t, lib, "Ada")
	grace := givenReader(t, lib, "Grace")

	_, err := lib.Borrow(ctx, ada.ID(), "Dune")
	require.NoError(t, err)

	// act
	outcome, err := lib.Return(ctx, grace.ID(), "Dune")

	// assert
	require.NoError(t, err)
	assert.Equal(t, library.OutcomeNotBorrowed, outcome)
	assert.False(t, dune.IsAvailable())
	assert.True(t, ada.HasBorrowedBook(dune))
}

func Test_Return_NotFound(t *testing.T) {
	ctx := context.Background()
	lib := givenLibrary(t)
	ada := givenReader(t, lib, "Ada")

	outcome, err := lib.Return(ctx, ada.ID(), "Dune")

	require.NoError(t, err)
	assert.Equal(t, library.OutcomeNotFound, outcome)
}

// A replaced book is a different copy, so the old loan cannot be returned against it.
func Test_Return_AfterBookWasReplaced(t *testing.T) {
	// arrange
	ctx := context.Background()
	lib := givenLibrary(t)
	original := givenBook(t, lib, "Dune")
	ada := givenReader(t, lib, "Ada")
	_, err := lib.Borrow(ctx, ada.ID(), "Dune")
	require.NoError(t, err)

	replacement := givenBook(t, lib, "Dune")

	// act
	outcome, err := lib.Return(ctx, ada.ID(), "Dune")

	// assert
	require.NoError(t, err)
	assert.Equal(t, library.OutcomeNotBorrowed, outcome)
	assert.True(t, ada.HasBorrowedBook(original))
	assert.True(t, replacement.IsAvailable())
}

func Test_Borrow_Concurrently_OnlyOneWins(t *testing.T) {
	// arrange
	ctx := context.Background()
	lib := givenLibrary(t)
	dune := givenBook(t, lib, "Dune")

	const readerCount = 50
	borrowers := make([]*readers.Borrower, 0, readerCount)
	for range readerCount {
		borrowers = append(borrowers, givenReader(t, lib, "Reader"))
	}

	outcomes := make([]library.Outcome, readerCount)

	// act
	var wg sync.WaitGroup
	for i, borrower := range borrowers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			outcomes[i], _ = lib.Borrow(ctx, borrower.ID(), "Dune")
		}()
	}

	wg.Wait()

	// assert
	okCount := 0
	for _, outcome := range outcomes {
		if outcome == library.OutcomeOK {
			okCount++
			continue
		}

		assert.Equal(t, library.OutcomeBookUnavailable, outcome)
	}

	assert.Equal(t, 1, okCount)
	assert.False(t, dune.IsAvailable())
}

func Test_Catalog(t *testing.T) {
	// arrange
	ctx := context.Background()
	lib := givenLibrary(t)

	// act / assert
	added, err := lib.AddBook(ctx, nil)
	require.NoError(t, err)
	assert.False(t, added)

	givenSampleCatalog(t, lib)
	assert.Len(t, lib.Books(), len(catalog.SampleBooks()))

	removed, err := lib.RemoveBook(ctx, "Not in the catalog")
	require.NoError(t, err)
	assert.False(t, removed)

	title := lib.Books()[0].Title()
	removed, err = lib.RemoveBook(ctx, title)
	require.NoError(t, err)
	assert.True(t, removed)

	_, found := lib.Search(title)
	assert.False(t, found)
}

func Test_Register(t *testing.T) {
	// arrange
	ctx := context.Background()
	lib := givenLibrary(t, library.WithReaderRegistryOptions(readers.WithIDGenerator(func() int { return 4711 })))

	// act
	ada, err := lib.Register(ctx, "Ada")
	require.NoError(t, err)
	grace, err := lib.Register(ctx, "Grace")
	require.NoError(t, err)
	_, blankErr := lib.Register(ctx, "  ")

	// assert
	assert.Equal(t, 4711, ada.ID())
	assert.NotEqual(t, ada.ID(), grace.ID())
	assert.ErrorIs(t, blankErr, readers.ErrEmptyReaderName)
	assert.Equal(t, []*readers.Borrower{ada, grace}, lib.Readers())

	found, exists := lib.FindReader(grace.ID())
	assert.True(t, exists)
	assert.Same(t, grace, found)
}

func Test_BorrowedBooks(t *testing.T) {
	// arrange
	ctx := context.Background()
	lib := givenLibrary(t)
	givenBook(t, lib, "Odyssey")
	givenBook(t, lib, "Dune")
	ada := givenReader(t, lib, "Ada")

	for _, title := range []string{"Odyssey", "Dune"} {
		_, err := lib.Borrow(ctx, ada.ID(), title)
		require.NoError(t, err)
	}

	// act
	books, found := lib.BorrowedBooks(ada.ID())
	_, unknownFound := lib.BorrowedBooks(999)

	// assert
	assert.True(t, found)
	assert.False(t, unknownFound)
	require.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].Title())
	assert.Equal(t, "Odyssey", books[1].Title())
}

func Test_New_InvalidOptions(t *testing.T) {
	testCases := []struct {
		description string
		option      library.Option
		expectedErr error
	}{
		{"borrow limit zero", library.WithBorrowLimit(0), library.ErrInvalidBorrowLimit},
		{"borrow limit above slots", library.WithBorrowLimit(readers.MaxBorrowedBooks + 1), library.ErrInvalidBorrowLimit},
		{"nil journal", library.WithJournal(nil), library.ErrNilJournal},
		{"nil clock", library.WithClock(nil), library.ErrNilClock},
		{"catalog capacity", library.WithCatalogOptions(catalog.WithCapacity(0)), catalog.ErrInvalidCapacity},
		{"id generator", library.WithReaderRegistryOptions(readers.WithIDGenerator(nil)), readers.ErrNilIDGenerator},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			lib, err := library.New(tc.option)

			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Nil(t, lib)
		})
	}
}

func givenLibrary(t *testing.T, options ...library.Option) *library.Library {
	t.Helper()

	lib, err := library.New(options...)
	require.NoError(t, err)

	return lib
}

func givenBook(t *testing.T, lib *library.Library, title string) *catalog.Book {
	t.Helper()

	book := catalog.BuildBook(title, "Some Author", len(lib.Books())+1, true)
	_, err := lib.AddBook(context.Background(), book)
	require.NoError(t, err)

	return book
}

func givenSampleCatalog(t *testing.T, lib *library.Library) {
	t.Helper()

	for _, book := range catalog.SampleBooks() {
		_, err := lib.AddBook(context.Background(), book)
		require.NoError(t, err)
	}
}

func givenReader(t *testing.T, lib *library.Library, name string) *readers.Borrower {
	t.Helper()

	borrower, err := lib.Register(context.Background(), name)
	require.NoError(t, err)

	return borrower
}

func availableBooks(lib *library.Library) []*catalog.Book {
	available := make([]*catalog.Book, 0)

	for _, book := range lib.Books() {
		if book.IsAvailable() {
			available = append(available, book)
		}
	}

	return available
}
