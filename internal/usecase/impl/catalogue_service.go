// Package impl contains the service implementations of the use case
// interfaces. Services stay free of persistence details: domain methods
// mutate entities in memory and the repositories commit the named fields.
package impl

import (
	"context"
	"errors"

	"biblio/internal/domain/entity"
	domainerrors "biblio/internal/domain/errors"
	"biblio/internal/domain/repository"
	"biblio/internal/domain/service"
	"biblio/internal/usecase"

	"github.com/google/uuid"
)

type catalogueService struct {
	authorRepo   repository.AuthorRepository
	categoryRepo repository.CategoryRepository
	bookRepo     repository.BookRepository
	clock        service.Clock
}

// NewCatalogueService creates a new catalogue service instance
func NewCatalogueService(
	authorRepo repository.AuthorRepository,
	categoryRepo repository.CategoryRepository,
	bookRepo repository.BookRepository,
	clock service.Clock,
) usecase.CatalogueUsecase {
	return &catalogueService{
		authorRepo:   authorRepo,
		categoryRepo: categoryRepo,
		bookRepo:     bookRepo,
		clock:        clock,
	}
}

// CreateAuthor registers a new author. Uniqueness of the natural key is
// enforced at the storage boundary.
func (s *catalogueService) CreateAuthor(ctx context.Context, input *usecase.CreateAuthorInput) (*entity.Author, error) {
	now := s.clock.Now()
	author := &entity.Author{
		ID:          uuid.New(),
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		BirthDate:   input.BirthDate,
		Nationality: input.Nationality,
		Bio:         input.Bio,
		DeathDate:   input.DeathDate,
		Website:     input.Website,
		PhotoURL:    input.PhotoURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.authorRepo.Create(ctx, author); err != nil {
		return nil, err
	}

	return author, nil
}

// GetAuthor retrieves a single author.
func (s *catalogueService) GetAuthor(ctx context.Context, id uuid.UUID) (*entity.Author, error) {
	author, err := s.authorRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAuthorNotFound) {
			return nil, domainerrors.ErrAuthorNotFound
		}

		return nil, err
	}

	return author, nil
}

// ListAuthors retrieves every author.
func (s *catalogueService) ListAuthors(ctx context.Context) ([]*entity.Author, error) {
	return s.authorRepo.ListAll(ctx)
}

// UpdateAuthor applies a partial update to an author.
func (s *catalogueService) UpdateAuthor(ctx context.Context, id uuid.UUID, input *usecase.UpdateAuthorInput) (*entity.Author, error) {
	author, err := s.GetAuthor(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Nationality != nil {
		author.Nationality = *input.Nationality
	}
	if input.Bio != nil {
		author.Bio = *input.Bio
	}
	if input.DeathDate != nil {
		author.DeathDate = input.DeathDate
	}
	if input.Website != nil {
		author.Website = *input.Website
	}
	if input.PhotoURL != nil {
		author.PhotoURL = *input.PhotoURL
	}
	author.UpdatedAt = s.clock.Now()

	if err := s.authorRepo.Update(ctx, author); err != nil {
		return nil, err
	}

	return author, nil
}

// DeleteAuthor removes an author. The delete is rejected with a conflict
// while any book references the author, which in practice makes a cascade
// unreachable.
func (s *catalogueService) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetAuthor(ctx, id); err != nil {
		return err
	}

	count, err := s.authorRepo.CountBooksByAuthor(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domainerrors.ErrAuthorHasBooks
	}

	return s.authorRepo.Delete(ctx, id)
}

// CreateCategory creates a new category.
func (s *catalogueService) CreateCategory(ctx context.Context, input *usecase.CreateCategoryInput) (*entity.Category, error) {
	category := &entity.Category{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory retrieves a single category.
func (s *catalogueService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound
		}

		return nil, err
	}

	return category, nil
}

// ListCategories retrieves every category, ordered by name.
func (s *catalogueService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return s.categoryRepo.ListAll(ctx)
}

// UpdateCategory applies a partial update to a category.
func (s *catalogueService) UpdateCategory(ctx context.Context, id uuid.UUID, input *usecase.UpdateCategoryInput) (*entity.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.ImageURL != nil {
		category.ImageURL = *input.ImageURL
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory removes a category. The storage rejects the delete while
// books still reference it.
func (s *catalogueService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryInUse) {
			return domainerrors.ErrCategoryInUse
		}

		return err
	}

	return nil
}

// CreateBook catalogues a new book. Both copy counters default to one, and
// a book given only a total starts fully available. The availability
// invariant is validated before anything is persisted.
func (s *catalogueService) CreateBook(ctx context.Context, input *usecase.CreateBookInput) (*entity.Book, error) {
	total := 1
	if input.TotalCopies != nil {
		total = *input.TotalCopies
	}
	available := total
	if input.AvailableCopies != nil {
		available = *input.AvailableCopies
	}

	book := &entity.Book{
		ID:              uuid.New(),
		ISBN:            input.ISBN,
		Title:           input.Title,
		AuthorID:        input.AuthorID,
		CategoryID:      input.CategoryID,
		PublishedDate:   input.PublishedDate,
		Language:        input.Language,
		Pages:           input.Pages,
		Publisher:       input.Publisher,
		Description:     input.Description,
		CoverURL:        input.CoverURL,
		TotalCopies:     total,
		AvailableCopies: available,
		CreatedAt:       s.clock.Now(),
	}

	if err := book.Validate(); err != nil {
		return nil, domainerrors.ErrBookValidationFailed.WithDetails(err.Error())
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// GetBook retrieves a single book.
func (s *catalogueService) GetBook(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, domainerrors.ErrBookNotFound
		}

		return nil, err
	}

	return book, nil
}

// GetBookByISBN retrieves a single book by ISBN.
func (s *catalogueService) GetBookByISBN(ctx context.Context, isbn string) (*entity.Book, error) {
	book, err := s.bookRepo.FindByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, domainerrors.ErrBookNotFound
		}

		return nil, err
	}

	return book, nil
}

// ListBooks retrieves every book, ordered by title.
func (s *catalogueService) ListBooks(ctx context.Context) ([]*entity.Book, error) {
	return s.bookRepo.ListAll(ctx)
}

// UpdateBook applies a partial update to a book's descriptive fields and
// re-validates before persisting. Copy counters and CreatedAt are not
// touched here.
func (s *catalogueService) UpdateBook(ctx context.Context, id uuid.UUID, input *usecase.UpdateBookInput) (*entity.Book, error) {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		book.Title = *input.Title
	}
	if input.CategoryID != nil {
		book.CategoryID = input.CategoryID
	}
	if input.PublishedDate != nil {
		book.PublishedDate = *input.PublishedDate
	}
	if input.Language != nil {
		book.Language = *input.Language
	}
	if input.Pages != nil {
		book.Pages = input.Pages
	}
	if input.Publisher != nil {
		book.Publisher = *input.Publisher
	}
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.CoverURL != nil {
		book.CoverURL = *input.CoverURL
	}

	if err := book.Validate(); err != nil {
		return nil, domainerrors.ErrBookValidationFailed.WithDetails(err.Error())
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// SetTotalCopies is the administrative edit of a book's copy count. A total
// below the currently available count is rejected rather than silently
// clamped, so stocktaking mistakes surface immediately.
func (s *catalogueService) SetTotalCopies(ctx context.Context, id uuid.UUID, totalCopies int) (*entity.Book, error) {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	book.TotalCopies = totalCopies
	if err := book.Validate(); err != nil {
		return nil, domainerrors.ErrBookValidationFailed.WithDetails(err.Error())
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// DeleteBook removes a book. The delete is rejected with a conflict while
// the book has ACTIVE loans; otherwise it proceeds and the storage cascades
// to the loan history.
func (s *catalogueService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetBook(ctx, id); err != nil {
		return err
	}

	active, err := s.bookRepo.CountActiveLoans(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return domainerrors.ErrBookHasActiveLoans
	}

	return s.bookRepo.Delete(ctx, id)
}

// GetBookAvailability returns the copy accounting read model for a book.
func (s *catalogueService) GetBookAvailability(ctx context.Context, id uuid.UUID) (*usecase.BookAvailability, error) {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	return &usecase.BookAvailability{
		TotalCopies:     book.TotalCopies,
		AvailableCopies: book.AvailableCopies,
		Available:       book.IsAvailable(),
		OccupancyRate:   book.OccupancyRate(),
	}, nil
}
