package readers_test

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/catalog"
	"github.com/AntonStoeckl/library-circulation-go/readers"
)

func Test_AddBorrowedBook_SortsByTitle(t *testing.T) {
	// arrange
	borrower := readers.BuildBorrower(1234, "Ada")
	odyssey := catalog.BuildBook("Odyssey", "Homer", 5, true)
	dune := catalog.BuildBook("Dune", "Frank Herbert", 1, true)
	martian := catalog.BuildBook("The Martian", "Andy Weir", 7, true)

	// act
	borrower.AddBorrowedBook(odyssey)
	borrower.AddBorrowedBook(martian)
	borrower.AddBorrowedBook(dune)

	// assert
	assert.Equal(t, 3, borrower.BorrowedCount())
	assert.Equal(t, []string{"Dune", "Odyssey", "The Martian"}, titlesOf(borrower.BorrowedBooks()))
}

func Test_AddBorrowedBook_AtMostFiveBooks(t *testing.T) {
	// arrange
	borrower := readers.BuildBorrower(1234, "Ada")
	books := catalog.SampleBooks()

	for _, book := range books[:readers.MaxBorrowedBooks] {
		assert.True(t, borrower.AddBorrowedBook(book))
	}

	before := borrower.BorrowedBooks()

	// act
	added := borrower.AddBorrowedBook(books[readers.MaxBorrowedBooks])

	// assert
	assert.False(t, added)
	assert.False(t, borrower.HasFreeSlot())
	assert.Equal(t, readers.MaxBorrowedBooks, borrower.BorrowedCount())
	assert.Equal(t, before, borrower.BorrowedBooks())
}

func Test_AddBorrowedBook_NilBook(t *testing.T) {
	borrower := readers.BuildBorrower(1234, "Ada")

	assert.False(t, borrower.AddBorrowedBook(nil))
	assert.Equal(t, 0, borrower.BorrowedCount())
}

func Test_RemoveBorrowedBook(t *testing.T) {
	// arrange
	borrower := readers.BuildBorrower(1234, "Ada")
	dune := catalog.BuildBook("Dune", "Frank Herbert", 1, true)
	odyssey := catalog.BuildBook("Odyssey", "Homer", 5, true)
	borrower.AddBorrowedBook(dune)
	borrower.AddBorrowedBook(odyssey)

	// act
	removed := borrower.RemoveBorrowedBook(dune)

	// assert
	assert.True(t, removed)
	assert.False(t, borrower.HasBorrowedBook(dune))
	assert.True(t, borrower.HasBorrowedBook(odyssey))
	assert.Equal(t, 1, borrower.BorrowedCount())
}

func Test_RemoveBorrowedBook_NotHeld_IsNoOp(t *testing.T) {
	// arrange
	borrower := readers.BuildBorrower(1234, "Ada")
	dune := catalog.BuildBook("Dune", "Frank Herbert", 1, true)
	otherDune := catalog.BuildBook("Dune", "Frank Herbert", 1, true)
	borrower.AddBorrowedBook(dune)

	// act
	removed := borrower.RemoveBorrowedBook(otherDune)
	removedNil := borrower.RemoveBorrowedBook(nil)

	// assert
	assert.False(t, removed)
	assert.False(t, removedNil)
	assert.Equal(t, 1, borrower.BorrowedCount())
	assert.True(t, borrower.HasBorrowedBook(dune))
}

func Test_HasBorrowedBook_ComparesIdentity(t *testing.T) {
	borrower := readers.BuildBorrower(1234, "Ada")
	dune := catalog.BuildBook("Dune", "Frank Herbert", 1, true)
	borrower.AddBorrowedBook(dune)

	assert.True(t, borrower.HasBorrowedBook(dune))
	assert.False(t, borrower.HasBorrowedBook(catalog.BuildBook("Dune", "Frank Herbert", 1, true)))
	assert.False(t, borrower.HasBorrowedBook(nil))
}

// Removing books leaves gaps in the slot array; later adds must still keep the held books ordered.
func Test_BorrowedBooks_StayOrderedAcrossAddsAndRemoves(t *testing.T) {
	// arrange
	borrower := readers.BuildBorrower(1234, "Ada")
	a := catalog.BuildBook("A", "x", 1, true)
	b := catalog.BuildBook("B", "x", 2, true)
	c := catalog.BuildBook("C", "x", 3, true)
	d := catalog.BuildBook("D", "x", 4, true)
	z := catalog.BuildBook("Z", "x", 5, true)

	borrower.AddBorrowedBook(a)
	borrower.AddBorrowedBook(b)
	borrower.AddBorrowedBook(c)
	borrower.AddBorrowedBook(d)
	borrower.RemoveBorrowedBook(a)
	borrower.RemoveBorrowedBook(c)

	// act
	borrower.AddBorrowedBook(z)

	// assert
	assert.Equal(t, []string{"B", "D", "Z"}, titlesOf(borrower.BorrowedBooks()))
	assert.Equal(t, 3, borrower.BorrowedCount())
}

func Test_BorrowedBooks_RandomSequences(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11)) //nolint:gosec // deterministic test data

	for run := 0; run < 200; run++ {
		borrower := readers.BuildBorrower(1234, "Ada")
		pool := catalog.SampleBooks()

		for step := 0; step < 30; step++ {
			book := pool[rng.IntN(len(pool))]

			switch {
			case borrower.HasBorrowedBook(book):
				borrower.RemoveBorrowedBook(book)
			case borrower.HasFreeSlot():
				borrower.AddBorrowedBook(book)
			}

			held := borrower.BorrowedBooks()
			assert.Len(t, held, borrower.BorrowedCount())
			assert.LessOrEqual(t, borrower.BorrowedCount(), readers.MaxBorrowedBooks)
			assert.True(t, slices.IsSortedFunc(held, func(x, y *catalog.Book) int {
				return strings.Compare(x.Title(), y.Title())
			}))
		}
	}
}

func Test_Borrower_String(t *testing.T) {
	borrower := readers.BuildBorrower(4711, "Ada")
	borrower.AddBorrowedBook(catalog.BuildBook("Dune", "Frank Herbert", 1, false))

	rendered := borrower.String()

	assert.True(t, strings.HasPrefix(rendered, "Person:\nlibraryID=4711\nUsername='Ada'\nBorrowed Books:\n"))
	assert.Contains(t, rendered, "Title: Dune")
	assert.True(t, strings.HasSuffix(rendered, "numBooksBorrowed=1"))
}

func titlesOf(books []*catalog.Book) []string {
	titles := make([]string, 0, len(books))
	for _, book := range books {
		titles = append(titles, book.Title())
	}

	return titles
}
