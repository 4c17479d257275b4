package catalog

import (
	"fmt"
)

const (
	availableText   = "Book is available"
	unavailableText = "Book is unavailable"
)

// TitleString is the catalog key of a book.
type TitleString = string

// BookIDInt is the informational numeric ID of a book, it is never used for lookups.
type BookIDInt = int

// Book is a single book in the catalog.
//
// Title, author and ID are fixed at construction, only the availability flag changes
// when the book is borrowed or returned.
type Book struct {
	title     TitleString
	author    string
	id        BookIDInt
	available bool
}

// BuildBook creates a new Book.
func BuildBook(title TitleString, author string, id BookIDInt, available bool) *Book {
	return &Book{
		title:     title,
		author:    author,
		id:        id,
		available: available,
	}
}

// Title returns the title, which is the catalog key.
func (b *Book) Title() TitleString {
	return b.title
}

// Author returns the author.
func (b *Book) Author() string {
	return b.author
}

// ID returns the informational book ID.
func (b *Book) ID() BookIDInt {
	return b.id
}

// IsAvailable reports whether the book can be borrowed, false means it is on loan.
func (b *Book) IsAvailable() bool {
	return b.available
}

// SetAvailable sets the availability flag.
func (b *Book) SetAvailable(available bool) {
	b.available = available
}

// String renders the book the way the circulation desk prints it.
func (b *Book) String() string {
	availability := unavailableText
	if b.available {
		availability = availableText
	}

	return fmt.Sprintf(
		"Book:\nTitle: %s\nAuthor: %s\nBook ID: %d\nAvailability: %s\n",
		b.title,
		b.author,
		b.id,
		availability,
	)
}

// SampleBooks returns the starter collection a new circulation desk is seeded with.
// Every call returns fresh Book instances.
func SampleBooks() []*Book {
	return []*Book{
		BuildBook("Dune", "Frank Herbert", 1, true),
		BuildBook("The Hunt for Red October", "Tom Clancy", 2, true),
		BuildBook("Fahrenheit 451", "Ray Bradbury", 3, false),
		BuildBook("Romeo and Juliet", "Shakespeare", 4, true),
		BuildBook("Odyssey", "Homer", 5, true),
		BuildBook("The Hobbit", "J.R.R. Tolkien", 6, false),
		BuildBook("The Martian", "Andy Weir", 7, true),
		BuildBook("The Catcher in the Rye", "J.D. Salinger", 8, false),
		BuildBook("1984", "George Orwell", 9, false),
		BuildBook("Moby Dick", "Herman Melville", 10, true),
	}
}
