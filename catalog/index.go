package catalog

import (
	"slices"
)

// Index maps titles to books using a fixed array of buckets with separate chaining.
type Index struct {
	buckets  []chain
	capacity int
	digest   DigestFunc
	size     int
}

// NewIndex creates an empty Index with DefaultCapacity buckets and the PolynomialDigest,
// both can be changed with options.
func NewIndex(options ...Option) (*Index, error) {
	idx := &Index{
		capacity: DefaultCapacity,
		digest:   PolynomialDigest,
	}

	for _, option := range options {
		if err := option(idx); err != nil {
			return nil, err
		}
	}

	idx.buckets = make([]chain, idx.capacity)

	return idx, nil
}

// Hash returns the bucket index for the key, always within [0, Capacity()).
func (idx *Index) Hash(key TitleString) int {
	return bucketFor(idx.digest(key), idx.capacity)
}

// Insert stores the book under the key.
//
// If an entry with an equal key exists, its book is replaced in place and the entry keeps
// its chain position. Otherwise a new entry is appended to the tail of the chain.
// Insert always succeeds.
func (idx *Index) Insert(key TitleString, book *Book) bool {
	bucket := idx.Hash(key)

	for i := range idx.buckets[bucket] {
		if idx.buckets[bucket][i].key == key {
			idx.buckets[bucket][i].book = book
			return true
		}
	}

	idx.buckets[bucket] = append(idx.buckets[bucket], entry{key: key, book: book})
	idx.size++

	return true
}

// Remove unlinks the entry with the given key and reports whether one was found.
// Removing an absent key is not an error, it returns false and changes nothing.
func (idx *Index) Remove(key TitleString) bool {
	bucket := idx.Hash(key)

	pos := slices.IndexFunc(idx.buckets[bucket], func(e entry) bool { return e.key == key })
	if pos < 0 {
		return false
	}

	idx.buckets[bucket] = slices.Delete(idx.buckets[bucket], pos, pos+1)
	if len(idx.buckets[bucket]) == 0 {
		idx.buckets[bucket] = nil
	}

	idx.size--

	return true
}

// Search returns the book stored under exactly this key.
// Keys are compared byte for byte, so case and whitespace matter.
func (idx *Index) Search(key TitleString) (*Book, bool) {
	for _, e := range idx.buckets[idx.Hash(key)] {
		if e.key == key {
			return e.book, true
		}
	}

	return nil, false
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	return idx.size
}

// Capacity returns the fixed number of buckets.
func (idx *Index) Capacity() int {
	return idx.capacity
}

// ChainLength returns the number of entries in one bucket, 0 for an out-of-range bucket.
func (idx *Index) ChainLength(bucket int) int {
	if bucket < 0 || bucket >= idx.capacity {
		return 0
	}

	return len(idx.buckets[bucket])
}

// Titles returns all keys in bucket order, and in chain order within a bucket.
func (idx *Index) Titles() []TitleString {
	titles := make([]TitleString, 0, idx.size)

	for _, c := range idx.buckets {
		for _, e := range c {
			titles = append(titles, e.key)
		}
	}

	return titles
}
