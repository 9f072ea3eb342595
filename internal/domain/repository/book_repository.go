package repository

import (
	"context"
	"errors"

	"biblio/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrBookNotFound is a domain-specific error returned when a book is not found.
var ErrBookNotFound = errors.New("book not found")

// ErrInsufficientCopies is returned when a guarded decrement finds fewer
// available copies than requested.
var ErrInsufficientCopies = errors.New("not enough available copies")

// BookRepository defines the standard operations for book persistence.
type BookRepository interface {
	// FindByID retrieves a single book by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error)

	// FindByISBN retrieves a single book by its unique ISBN.
	FindByISBN(ctx context.Context, isbn string) (*entity.Book, error)

	// ListAll retrieves every book, ordered by title.
	ListAll(ctx context.Context) ([]*entity.Book, error)

	// Create persists a new book entity to the storage.
	Create(ctx context.Context, book *entity.Book) error

	// Update modifies an existing book entity in the storage. CreatedAt is
	// never touched.
	Update(ctx context.Context, book *entity.Book) error

	// DecrementAvailableCopies atomically takes qty copies out of
	// availability. The decrement and its guard run in one statement, so
	// concurrent checkouts of the same book serialize on the row and can
	// never take the counter below zero. Returns ErrInsufficientCopies
	// when fewer than qty copies are available.
	DecrementAvailableCopies(ctx context.Context, id uuid.UUID, qty int) error

	// IncrementAvailableCopies atomically returns qty copies to
	// availability, capped at total_copies in the same statement.
	IncrementAvailableCopies(ctx context.Context, id uuid.UUID, qty int) error

	// Delete removes a book and, per the storage cascade policy, its loan
	// history. Callers must run the active-loans guard first.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountActiveLoans returns the number of ACTIVE loans referencing the
	// book, feeding the deletion guard.
	CountActiveLoans(ctx context.Context, bookID uuid.UUID) (int64, error)
}
