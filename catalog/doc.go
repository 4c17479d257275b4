// Package catalog contains the book catalog of the library: the Book type and
// a hash index that maps exact book titles to books.
//
// The Index is a fixed-capacity hash table with separate chaining. Each bucket
// holds a chain of entries in insertion order; an insert with a title that is
// already present replaces the book of that entry in place, so no two entries
// ever share a title.
//
// The capacity is chosen at construction time and never changes. A catalog that
// grows far beyond its capacity still works, the chains just get longer.
//
// Typical usage:
//
//	index, err := catalog.NewIndex(catalog.WithCapacity(100))
//	if err != nil {
//		// handle error
//	}
//
//	registry := catalog.NewRegistry(index)
//	registry.AddBook(catalog.BuildBook("Dune", "Frank Herbert", 1, true))
//
//	book, found := registry.Search("Dune")
//
// Neither Index nor Registry is safe for concurrent use; the library package
// serializes access to them.
package catalog
