package catalog

import (
	"errors"
)

// DefaultCapacity is the number of buckets an Index gets when no capacity is configured.
const DefaultCapacity = 100

var (
	// ErrInvalidCapacity is returned when a non-positive capacity is configured.
	ErrInvalidCapacity = errors.New("index capacity must be positive")

	// ErrNilDigest is returned when a nil DigestFunc is configured.
	ErrNilDigest = errors.New("digest function must not be nil")
)

// Option defines a functional option for configuring an Index.
type Option func(*Index) error

// WithCapacity sets the fixed number of buckets.
func WithCapacity(capacity int) Option {
	return func(idx *Index) error {
		if capacity <= 0 {
			return ErrInvalidCapacity
		}

		idx.capacity = capacity

		return nil
	}
}

// WithDigest replaces the PolynomialDigest used to derive bucket indexes from titles.
func WithDigest(digest DigestFunc) Option {
	return func(idx *Index) error {
		if digest == nil {
			return ErrNilDigest
		}

		idx.digest = digest

		return nil
	}
}
