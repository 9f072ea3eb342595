package entity

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Language is the publication language of a book.
type Language string

// Supported publication languages.
const (
	LanguageFR    Language = "FR"
	LanguageEN    Language = "EN"
	LanguageES    Language = "ES"
	LanguageDE    Language = "DE"
	LanguageIT    Language = "IT"
	LanguageOther Language = "OTHER"
)

// isbnLength is the fixed length of an ISBN-13 without separators.
const isbnLength = 13

// ErrInsufficientCopies is returned when a decrement asks for more copies
// than are currently available.
var ErrInsufficientCopies = errors.New("not enough available copies")

// Valid reports whether the language is one of the supported values.
func (l Language) Valid() bool {
	switch l {
	case LanguageFR, LanguageEN, LanguageES, LanguageDE, LanguageIT, LanguageOther:
		return true
	}

	return false
}

// Book is a catalogued title. TotalCopies counts every physical copy the
// library owns; AvailableCopies counts the ones not currently loaned out.
// The counters are only ever mutated through DecrementAvailable and
// IncrementAvailable so the 0 <= available <= total invariant cannot be
// broken by direct field assignment at call sites.
type Book struct {
	ID              uuid.UUID
	ISBN            string // Unique ISBN-13, exactly 13 characters.
	Title           string
	AuthorID        uuid.UUID
	CategoryID      *uuid.UUID // Nil when the book is uncategorised.
	PublishedDate   time.Time
	Language        Language
	Pages           *int // Nil when the page count is unknown.
	Publisher       string
	Description     string
	CoverURL        string // Optional reference to a stored cover image.
	TotalCopies     int
	AvailableCopies int
	CreatedAt       time.Time // Set once at creation, never updated.
}

// FieldError reports a field-level invariant violation found before a write.
type FieldError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate checks the field-level invariants that must hold before the book
// is persisted or updated. It returns a *FieldError naming the offending
// field, or nil.
func (b *Book) Validate() error {
	if len(b.ISBN) != isbnLength {
		return &FieldError{Field: "isbn", Reason: fmt.Sprintf("must be exactly %d characters", isbnLength)}
	}
	if !b.Language.Valid() {
		return &FieldError{Field: "language", Reason: fmt.Sprintf("unsupported language %q", b.Language)}
	}
	if b.TotalCopies < 0 {
		return &FieldError{Field: "total_copies", Reason: "must not be negative"}
	}
	if b.AvailableCopies < 0 {
		return &FieldError{Field: "available_copies", Reason: "must not be negative"}
	}
	if b.AvailableCopies > b.TotalCopies {
		return &FieldError{Field: "available_copies", Reason: "must not exceed total copies"}
	}

	return nil
}

// IsAvailable reports whether at least one copy can be checked out.
func (b *Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}

// DecrementAvailable removes qty copies from availability. A qty below 1 is
// a no-op. It returns ErrInsufficientCopies when fewer than qty copies are
// available, leaving the counter untouched.
func (b *Book) DecrementAvailable(qty int) error {
	if qty < 1 {
		return nil
	}
	if b.AvailableCopies < qty {
		return ErrInsufficientCopies
	}
	b.AvailableCopies -= qty

	return nil
}

// IncrementAvailable returns qty copies to availability, silently capped at
// TotalCopies. A qty below 1 is a no-op. It never fails.
func (b *Book) IncrementAvailable(qty int) {
	if qty < 1 {
		return
	}
	b.AvailableCopies += qty
	if b.AvailableCopies > b.TotalCopies {
		b.AvailableCopies = b.TotalCopies
	}
}

// OccupancyRate returns the percentage of copies currently loaned out,
// rounded to two decimals. A book with no copies at all has a rate of 0;
// the explicit guard keeps the division defined.
func (b *Book) OccupancyRate() float64 {
	if b.TotalCopies == 0 {
		return 0
	}
	borrowed := b.TotalCopies - b.AvailableCopies

	return round2(100 * float64(borrowed) / float64(b.TotalCopies))
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
