package readers

import (
	"errors"
	"math/rand/v2"
	"strings"
)

const (
	// MinReaderID is the smallest library ID handed out.
	MinReaderID = 1000

	// MaxReaderID is the largest library ID handed out.
	MaxReaderID = 9999

	maxRandomDraws = 64
)

var (
	// ErrEmptyReaderName is returned when a reader is registered with a blank name.
	ErrEmptyReaderName = errors.New("reader name must not be empty")

	// ErrNoFreeReaderID is returned when every ID in [MinReaderID, MaxReaderID] is taken.
	ErrNoFreeReaderID = errors.New("no free reader id left")

	// ErrNilIDGenerator is returned when a nil IDGenerator is configured.
	ErrNilIDGenerator = errors.New("id generator must not be nil")

	// ErrNilBorrower is returned when a nil Borrower is added.
	ErrNilBorrower = errors.New("borrower must not be nil")

	// ErrReaderIDTaken is returned when a Borrower is added under an ID that is already in use
	// or outside [MinReaderID, MaxReaderID].
	ErrReaderIDTaken = errors.New("reader id is taken or out of range")
)

// IDGenerator draws a candidate library ID. Candidates outside [MinReaderID, MaxReaderID]
// are discarded.
type IDGenerator func() ReaderIDInt

// RandomID draws a uniformly distributed ID in [MinReaderID, MaxReaderID].
func RandomID() ReaderIDInt {
	return rand.IntN(MaxReaderID-MinReaderID+1) + MinReaderID //nolint:gosec // library IDs are not secrets
}

// RegistryOption defines a functional option for configuring a Registry.
type RegistryOption func(*Registry) error

// WithIDGenerator replaces RandomID.
func WithIDGenerator(generator IDGenerator) RegistryOption {
	return func(r *Registry) error {
		if generator == nil {
			return ErrNilIDGenerator
		}

		r.nextID = generator

		return nil
	}
}

// Registry is the ordered collection of registered readers.
// Lookups by ID are linear scans.
type Registry struct {
	borrowers []*Borrower
	takenIDs  map[ReaderIDInt]struct{}
	nextID    IDGenerator
}

// NewRegistry creates an empty Registry.
func NewRegistry(options ...RegistryOption) (*Registry, error) {
	r := &Registry{
		borrowers: make([]*Borrower, 0),
		takenIDs:  make(map[ReaderIDInt]struct{}),
		nextID:    RandomID,
	}

	for _, option := range options {
		if err := option(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Register creates a Borrower with a random library ID that no registered reader uses yet.
func (r *Registry) Register(name string) (*Borrower, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyReaderName
	}

	id, err := r.NextFreeID()
	if err != nil {
		return nil, err
	}

	borrower := BuildBorrower(id, name)
	if err = r.Add(borrower); err != nil {
		return nil, err
	}

	return borrower, nil
}

// Add appends an already built Borrower. Callers that must do something between choosing
// the ID and admitting the reader use NextFreeID and Add instead of Register.
func (r *Registry) Add(borrower *Borrower) error {
	if borrower == nil {
		return ErrNilBorrower
	}

	if strings.TrimSpace(borrower.Name()) == "" {
		return ErrEmptyReaderName
	}

	id := borrower.ID()
	if _, taken := r.takenIDs[id]; taken || id < MinReaderID || id > MaxReaderID {
		return ErrReaderIDTaken
	}

	r.borrowers = append(r.borrowers, borrower)
	r.takenIDs[id] = struct{}{}

	return nil
}

// FindByID returns the reader with the given library ID.
func (r *Registry) FindByID(id ReaderIDInt) (*Borrower, bool) {
	for _, borrower := range r.borrowers {
		if borrower.ID() == id {
			return borrower, true
		}
	}

	return nil, false
}

// Borrowers returns all readers in registration order.
func (r *Registry) Borrowers() []*Borrower {
	borrowers := make([]*Borrower, len(r.borrowers))
	copy(borrowers, r.borrowers)

	return borrowers
}

// Len returns the number of registered readers.
func (r *Registry) Len() int {
	return len(r.borrowers)
}

// NextFreeID draws random candidates first and falls back to the lowest unused ID,
// so registration terminates even with a poor generator. The ID is not reserved.
func (r *Registry) NextFreeID() (ReaderIDInt, error) {
	if len(r.borrowers) >= MaxReaderID-MinReaderID+1 {
		return 0, ErrNoFreeReaderID
	}

	for range maxRandomDraws {
		candidate := r.nextID()
		if candidate < MinReaderID || candidate > MaxReaderID {
			continue
		}

		if _, taken := r.takenIDs[candidate]; !taken {
			return candidate, nil
		}
	}

	for candidate := MinReaderID; candidate <= MaxReaderID; candidate++ {
		if _, taken := r.takenIDs[candidate]; !taken {
			return candidate, nil
		}
	}

	return 0, ErrNoFreeReaderID
}
