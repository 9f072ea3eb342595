package repository

import (
	"context"
	"errors"

	"biblio/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCategoryNotFound is a domain-specific error returned when a category is not found.
var ErrCategoryNotFound = errors.New("category not found")

// ErrCategoryInUse is returned when deleting a category that books still
// reference; the storage's foreign key rejects the delete.
var ErrCategoryInUse = errors.New("category still referenced by books")

// CategoryRepository defines the standard operations for category persistence.
type CategoryRepository interface {
	// FindByID retrieves a single category by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// ListAll retrieves every category, ordered by name.
	ListAll(ctx context.Context) ([]*entity.Category, error)

	// Create persists a new category entity to the storage.
	Create(ctx context.Context, category *entity.Category) error

	// Update modifies an existing category entity in the storage.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category. It returns ErrCategoryInUse when books
	// still reference it.
	Delete(ctx context.Context, id uuid.UUID) error
}
