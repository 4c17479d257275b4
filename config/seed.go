package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/library-circulation-go/catalog"
)

var (
	// ErrReadingSeedFileFailed wraps read and YAML decoding failures.
	ErrReadingSeedFileFailed = errors.New("reading seed file failed")

	// ErrInvalidSeedBook is returned for an entry without a title.
	ErrInvalidSeedBook = errors.New("invalid seed book")
)

// SeedBook is one entry of the seed file:
//
//	books:
//	  - title: Dune
//	    author: Frank Herbert
//	    id: 1
//	    available: true
type SeedBook struct {
	Title     string `yaml:"title"`
	Author    string `yaml:"author"`
	ID        int    `yaml:"id"`
	Available *bool  `yaml:"available"`
}

type seedFile struct {
	Books []SeedBook `yaml:"books"`
}

// LoadSeedFile reads books from a YAML seed file. A missing available flag means available.
// An empty path yields catalog.SampleBooks.
func LoadSeedFile(path string) ([]*catalog.Book, error) {
	if path == "" {
		return catalog.SampleBooks(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadingSeedFileFailed, err)
	}

	return ParseSeed(content)
}

// ParseSeed decodes the YAML content of a seed file.
func ParseSeed(content []byte) ([]*catalog.Book, error) {
	var seed seedFile
	if err := yaml.Unmarshal(content, &seed); err != nil {
		return nil, errors.Join(ErrReadingSeedFileFailed, err)
	}

	books := make([]*catalog.Book, 0, len(seed.Books))

	for i, entry := range seed.Books {
		if strings.TrimSpace(entry.Title) == "" {
			return nil, fmt.Errorf("%w: entry %d has no title", ErrInvalidSeedBook, i+1)
		}

		available := true
		if entry.Available != nil {
			available = *entry.Available
		}

		books = append(books, catalog.BuildBook(entry.Title, entry.Author, entry.ID, available))
	}

	return books, nil
}
