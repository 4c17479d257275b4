package readers

import (
	"fmt"
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/catalog"
)

// MaxBorrowedBooks is the number of slots a Borrower has for books on loan.
const MaxBorrowedBooks = 5

// ReaderIDInt is the numeric library ID of a reader.
type ReaderIDInt = int

// Borrower is a registered reader together with the books they currently hold.
//
// The slots hold non-owning references to catalog books. Occupied slots are always packed
// to the front and ordered by title, and their number equals BorrowedCount().
type Borrower struct {
	id    ReaderIDInt
	name  string
	slots [MaxBorrowedBooks]*catalog.Book
	count int
}

// BuildBorrower creates a Borrower holding no books.
func BuildBorrower(id ReaderIDInt, name string) *Borrower {
	return &Borrower{
		id:   id,
		name: name,
	}
}

// ID returns the library ID.
func (b *Borrower) ID() ReaderIDInt {
	return b.id
}

// Name returns the display name.
func (b *Borrower) Name() string {
	return b.name
}

// BorrowedCount returns how many books the borrower currently holds.
func (b *Borrower) BorrowedCount() int {
	return b.count
}

// HasFreeSlot reports whether one more book fits.
func (b *Borrower) HasFreeSlot() bool {
	return b.count < MaxBorrowedBooks
}

// AddBorrowedBook puts the book into the first free slot and re-sorts the slots by title.
//
// It does not enforce any lending rule, callers check HasFreeSlot (or their own limit) first.
// When every slot is taken nothing changes and false is returned.
func (b *Borrower) AddBorrowedBook(book *catalog.Book) bool {
	if book == nil {
		return false
	}

	for i := range b.slots {
		if b.slots[i] == nil {
			b.slots[i] = book
			b.count++
			b.sortSlots()

			return true
		}
	}

	return false
}

// RemoveBorrowedBook clears the first slot holding exactly this book.
// It is a no-op returning false when the book is not held.
func (b *Borrower) RemoveBorrowedBook(book *catalog.Book) bool {
	for i := range b.slots {
		if b.slots[i] != nil && b.slots[i] == book {
			b.slots[i] = nil
			b.count--
			b.sortSlots()

			return true
		}
	}

	return false
}

// HasBorrowedBook reports whether one of the occupied slots holds exactly this book.
func (b *Borrower) HasBorrowedBook(book *catalog.Book) bool {
	if book == nil {
		return false
	}

	for _, held := range b.slots {
		if held == book {
			return true
		}
	}

	return false
}

// BorrowedBooks returns the held books in slot order, which is ascending by title.
func (b *Borrower) BorrowedBooks() []*catalog.Book {
	books := make([]*catalog.Book, 0, b.count)

	for _, held := range b.slots {
		if held != nil {
			books = append(books, held)
		}
	}

	return books
}

// sortSlots packs the occupied slots to the front and insertion-sorts them by title.
func (b *Borrower) sortSlots() {
	packed := 0
	for i := range b.slots {
		if b.slots[i] != nil {
			b.slots[packed], b.slots[i] = b.slots[i], b.slots[packed]
			packed++
		}
	}

	for i := 1; i < packed; i++ {
		key := b.slots[i]
		j := i - 1

		for j >= 0 && b.slots[j].Title() > key.Title() {
			b.slots[j+1] = b.slots[j]
			j--
		}

		b.slots[j+1] = key
	}
}

// String renders the borrower the way the circulation desk prints it.
func (b *Borrower) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Person:\nlibraryID=%d\nUsername='%s'\nBorrowed Books:\n", b.id, b.name)

	for _, book := range b.BorrowedBooks() {
		sb.WriteString(book.String())
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "numBooksBorrowed=%d", b.count)

	return sb.String()
}
