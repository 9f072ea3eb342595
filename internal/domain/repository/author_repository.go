// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"biblio/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAuthorNotFound is a domain-specific error returned when an author is not found.
var ErrAuthorNotFound = errors.New("author not found")

// AuthorRepository defines the standard operations for author persistence.
// The storage enforces uniqueness of the (first name, last name, birth date)
// natural key on writes.
type AuthorRepository interface {
	// FindByID retrieves a single author by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Author, error)

	// ListAll retrieves every author, ordered by last then first name.
	ListAll(ctx context.Context) ([]*entity.Author, error)

	// Create persists a new author entity to the storage.
	Create(ctx context.Context, author *entity.Author) error

	// Update modifies an existing author entity in the storage.
	Update(ctx context.Context, author *entity.Author) error

	// Delete removes an author. Callers must run the has-books guard first.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountBooksByAuthor returns how many books reference the author,
	// feeding the deletion guard.
	CountBooksByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
}
