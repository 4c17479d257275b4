package catalog

import (
	"unicode/utf16"
)

// DigestFunc derives a signed 32-bit integer from a title.
// Equal titles must always produce equal digests.
type DigestFunc func(key TitleString) int32

// PolynomialDigest computes h = 31*h + c over the UTF-16 code units of the key with
// signed 32-bit wraparound. The result may be negative.
func PolynomialDigest(key TitleString) int32 {
	var h int32

	for _, c := range utf16.Encode([]rune(key)) {
		h = 31*h + int32(c)
	}

	return h
}

// bucketFor reduces a digest into [0, capacity).
func bucketFor(digest int32, capacity int) int {
	bucket := int(digest) % capacity
	if bucket < 0 {
		bucket += capacity
	}

	return bucket
}
