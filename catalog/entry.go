package catalog

// entry pairs a title with the book stored under it.
type entry struct {
	key  TitleString
	book *Book
}

// chain is the ordered list of entries that hash to one bucket.
type chain = []entry
