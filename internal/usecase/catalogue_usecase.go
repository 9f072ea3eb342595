// Package usecase defines the application-facing interfaces and their
// input/output types. Services in impl implement them.
package usecase

import (
	"context"
	"time"

	"biblio/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateAuthorInput represents the input for registering a new author.
type CreateAuthorInput struct {
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	BirthDate   time.Time  `json:"birth_date"`
	Nationality string     `json:"nationality"`
	Bio         string     `json:"bio"`
	DeathDate   *time.Time `json:"death_date,omitempty"`
	Website     string     `json:"website"`
	PhotoURL    string     `json:"photo_url"`
}

// UpdateAuthorInput represents a partial update of an author. Nil fields are
// left unchanged.
type UpdateAuthorInput struct {
	Nationality *string    `json:"nationality,omitempty"`
	Bio         *string    `json:"bio,omitempty"`
	DeathDate   *time.Time `json:"death_date,omitempty"`
	Website     *string    `json:"website,omitempty"`
	PhotoURL    *string    `json:"photo_url,omitempty"`
}

// CreateCategoryInput represents the input for creating a category.
type CreateCategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// UpdateCategoryInput represents a partial update of a category.
type UpdateCategoryInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// CreateBookInput represents the input for cataloguing a new book. Copy
// counts default to one each; when only the total is given, the book starts
// fully available.
type CreateBookInput struct {
	ISBN            string          `json:"isbn"`
	Title           string          `json:"title"`
	AuthorID        uuid.UUID       `json:"author_id"`
	CategoryID      *uuid.UUID      `json:"category_id,omitempty"`
	PublishedDate   time.Time       `json:"published_date"`
	Language        entity.Language `json:"language"`
	Pages           *int            `json:"pages,omitempty"`
	Publisher       string          `json:"publisher"`
	Description     string          `json:"description"`
	CoverURL        string          `json:"cover_url"`
	TotalCopies     *int            `json:"total_copies,omitempty"`
	AvailableCopies *int            `json:"available_copies,omitempty"`
}

// UpdateBookInput represents a partial update of a book's descriptive
// fields. Copy counters are excluded: they move only through checkout,
// return, and SetTotalCopies.
type UpdateBookInput struct {
	Title         *string          `json:"title,omitempty"`
	CategoryID    *uuid.UUID       `json:"category_id,omitempty"`
	PublishedDate *time.Time       `json:"published_date,omitempty"`
	Language      *entity.Language `json:"language,omitempty"`
	Pages         *int             `json:"pages,omitempty"`
	Publisher     *string          `json:"publisher,omitempty"`
	Description   *string          `json:"description,omitempty"`
	CoverURL      *string          `json:"cover_url,omitempty"`
}

// BookAvailability is the read model for a book's copy accounting.
type BookAvailability struct {
	TotalCopies     int     `json:"total_copies"`
	AvailableCopies int     `json:"available_copies"`
	Available       bool    `json:"available"`
	OccupancyRate   float64 `json:"occupancy_rate"`
}

// CatalogueUsecase defines the catalogue management use cases: author,
// category, and book maintenance with the referential deletion guards.
type CatalogueUsecase interface {
	// Author management. DeleteAuthor is rejected while books reference the author.
	CreateAuthor(ctx context.Context, input *CreateAuthorInput) (*entity.Author, error)
	GetAuthor(ctx context.Context, id uuid.UUID) (*entity.Author, error)
	ListAuthors(ctx context.Context) ([]*entity.Author, error)
	UpdateAuthor(ctx context.Context, id uuid.UUID, input *UpdateAuthorInput) (*entity.Author, error)
	DeleteAuthor(ctx context.Context, id uuid.UUID) error

	// Category management. DeleteCategory is rejected while books reference the category.
	CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input *UpdateCategoryInput) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// Book management. DeleteBook is rejected while the book has active loans.
	CreateBook(ctx context.Context, input *CreateBookInput) (*entity.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*entity.Book, error)
	GetBookByISBN(ctx context.Context, isbn string) (*entity.Book, error)
	ListBooks(ctx context.Context) ([]*entity.Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, input *UpdateBookInput) (*entity.Book, error)
	SetTotalCopies(ctx context.Context, id uuid.UUID, totalCopies int) (*entity.Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
	GetBookAvailability(ctx context.Context, id uuid.UUID) (*BookAvailability, error)
}
