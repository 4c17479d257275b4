package catalog

import (
	"slices"
	"strings"
)

// Registry owns the books of the catalog and indexes them by title.
type Registry struct {
	index *Index
}

// NewRegistry creates a Registry on top of the given Index.
func NewRegistry(index *Index) *Registry {
	return &Registry{index: index}
}

// AddBook indexes the book under its title. A book with the same title is replaced.
// A nil book is ignored and reported as false.
func (r *Registry) AddBook(book *Book) bool {
	if book == nil {
		return false
	}

	return r.index.Insert(book.Title(), book)
}

// RemoveBook removes the book with the given title and reports whether it was present.
func (r *Registry) RemoveBook(title TitleString) bool {
	return r.index.Remove(title)
}

// Search looks a book up by its exact title.
func (r *Registry) Search(title TitleString) (*Book, bool) {
	return r.index.Search(title)
}

// Len returns the number of books in the catalog.
func (r *Registry) Len() int {
	return r.index.Len()
}

// Books returns all books sorted by title.
func (r *Registry) Books() []*Book {
	titles := r.index.Titles()
	books := make([]*Book, 0, len(titles))

	for _, title := range titles {
		if book, found := r.index.Search(title); found && book != nil {
			books = append(books, book)
		}
	}

	slices.SortFunc(books, func(a, b *Book) int {
		return strings.Compare(a.Title(), b.Title())
	})

	return books
}
