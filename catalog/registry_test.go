package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/catalog"
)

func Test_Registry_AddBook_IndexesByTitle(t *testing.T) {
	// arrange
	registry := catalog.NewRegistry(givenIndex(t))
	hobbit := catalog.BuildBook("The Hobbit", "J.R.R. Tolkien", 6, false)

	// act
	added := registry.AddBook(hobbit)

	// assert
	assert.True(t, added)
	found, exists := registry.Search("The Hobbit")
	assert.True(t, exists)
	assert.Same(t, hobbit, found)
	assert.Equal(t, 1, registry.Len())
}

func Test_Registry_AddBook_NilBook(t *testing.T) {
	registry := catalog.NewRegistry(givenIndex(t))

	assert.False(t, registry.AddBook(nil))
	assert.Equal(t, 0, registry.Len())
}

func Test_Registry_RemoveBook(t *testing.T) {
	// arrange
	registry := catalog.NewRegistry(givenIndex(t))
	registry.AddBook(catalog.BuildBook("Odyssey", "Homer", 5, true))

	// act / assert
	assert.True(t, registry.RemoveBook("Odyssey"))
	assert.False(t, registry.RemoveBook("Odyssey"))
	_, exists := registry.Search("Odyssey")
	assert.False(t, exists)
}

func Test_Registry_Books_SortedByTitle(t *testing.T) {
	// arrange
	registry := catalog.NewRegistry(givenIndex(t))
	for _, book := range catalog.SampleBooks() {
		registry.AddBook(book)
	}

	// act
	books := registry.Books()

	// assert
	titles := make([]string, 0, len(books))
	for _, book := range books {
		titles = append(titles, book.Title())
	}

	assert.Equal(t, []string{
		"1984",
		"Dune",
		"Fahrenheit 451",
		"Moby Dick",
		"Odyssey",
		"Romeo and Juliet",
		"The Catcher in the Rye",
		"The Hobbit",
		"The Hunt for Red October",
		"The Martian",
	}, titles)
}

func Test_SampleBooks_FreshInstances(t *testing.T) {
	first := catalog.SampleBooks()
	second := catalog.SampleBooks()

	first[0].SetAvailable(false)

	assert.Len(t, first, 10)
	assert.True(t, second[0].IsAvailable())
}

func Test_Book_String(t *testing.T) {
	dune := catalog.BuildBook("Dune", "Frank Herbert", 1, true)

	assert.Equal(t, "Book:\nTitle: Dune\nAuthor: Frank Herbert\nBook ID: 1\nAvailability: Book is available\n", dune.String())

	dune.SetAvailable(false)
	assert.Contains(t, dune.String(), "Availability: Book is unavailable")
}
