package persistence

import (
	"context"

	"biblio/internal/domain/entity"
	domainerrors "biblio/internal/domain/errors"
	"biblio/internal/domain/repository"
	"biblio/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// bookRepository implements the repository.BookRepository interface.
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository is the constructor for bookRepository.
func NewBookRepository(db *gorm.DB) repository.BookRepository {
	return &bookRepository{
		db: db,
	}
}

// FindByID retrieves a book by its unique ID.
func (repo *bookRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	var bookM model.BookModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&bookM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookNotFound
		}

		return nil, errors.Wrap(err, "failed to find book by ID")
	}

	return toBookDomain(&bookM), nil
}

// FindByISBN retrieves a book by its unique ISBN.
func (repo *bookRepository) FindByISBN(ctx context.Context, isbn string) (*entity.Book, error) {
	var bookM model.BookModel

	if err := repo.db.WithContext(ctx).
		Where("isbn = ?", isbn).
		First(&bookM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookNotFound
		}

		return nil, errors.Wrap(err, "failed to find book by ISBN")
	}

	return toBookDomain(&bookM), nil
}

// ListAll retrieves every book, ordered by title.
func (repo *bookRepository) ListAll(ctx context.Context) ([]*entity.Book, error) {
	var bookModels []*model.BookModel

	if err := repo.db.WithContext(ctx).
		Order("title").
		Find(&bookModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list books")
	}

	books := make([]*entity.Book, 0, len(bookModels))
	for _, bookM := range bookModels {
		books = append(books, toBookDomain(bookM))
	}

	return books, nil
}

// Create persists a new book.
func (repo *bookRepository) Create(ctx context.Context, book *entity.Book) error {
	bookM := fromBookDomain(book)

	if err := repo.db.WithContext(ctx).Create(bookM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrISBNAlreadyExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WithDetails("invalid author or category reference")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrBookValidationFailed.WithDetails("available copies exceed total copies")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WithDetails("missing required book information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create book")
	}

	return nil
}

// Update modifies an existing book. CreatedAt stays untouched.
func (repo *bookRepository) Update(ctx context.Context, book *entity.Book) error {
	bookM := fromBookDomain(book)

	result := repo.db.WithContext(ctx).
		Model(&model.BookModel{}).
		Where("id = ?", book.ID).
		Select(
			"title", "category_id", "published_date", "language", "pages",
			"publisher", "description", "cover_url", "total_copies", "available_copies",
		).
		Updates(bookM)

	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WithDetails("invalid category reference")
		}
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrBookValidationFailed.WithDetails("available copies exceed total copies")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update book")
	}

	if result.RowsAffected == 0 {
		return repository.ErrBookNotFound
	}

	return nil
}

// DecrementAvailableCopies takes qty copies out of availability. The guard
// sits in the WHERE clause and the decrement is relative, so concurrent
// checkouts serialize on the row update and the counter can never go
// negative, whatever value each transaction read beforehand.
func (repo *bookRepository) DecrementAvailableCopies(ctx context.Context, id uuid.UUID, qty int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BookModel{}).
		Where("id = ? AND available_copies >= ?", id, qty).
		Update("available_copies", gorm.Expr("available_copies - ?", qty))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to decrement available copies")
	}

	if result.RowsAffected == 0 {
		// Either the book is gone or the guard refused the decrement.
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.BookModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to decrement available copies")
		}
		if count == 0 {
			return repository.ErrBookNotFound
		}

		return repository.ErrInsufficientCopies
	}

	return nil
}

// IncrementAvailableCopies returns qty copies to availability. The cap at
// total_copies is applied inside the statement, so concurrent returns never
// push the counter past the total.
func (repo *bookRepository) IncrementAvailableCopies(ctx context.Context, id uuid.UUID, qty int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BookModel{}).
		Where("id = ?", id).
		Update("available_copies", gorm.Expr(
			"CASE WHEN available_copies + ? > total_copies THEN total_copies ELSE available_copies + ? END",
			qty, qty,
		))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to increment available copies")
	}

	if result.RowsAffected == 0 {
		return repository.ErrBookNotFound
	}

	return nil
}

// Delete removes a book by ID. The cascade on loans clears its history.
func (repo *bookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.BookModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete book")
	}

	if result.RowsAffected == 0 {
		return repository.ErrBookNotFound
	}

	return nil
}

// CountActiveLoans returns the number of ACTIVE loans referencing the book.
func (repo *bookRepository) CountActiveLoans(ctx context.Context, bookID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.LoanModel{}).
		Where("book_id = ? AND status = ?", bookID, string(entity.LoanStatusActive)).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count active loans")
	}

	return count, nil
}

// --- Mapper Functions ---

// toBookDomain converts a GORM BookModel to a domain Book entity.
func toBookDomain(data *model.BookModel) *entity.Book {
	if data == nil {
		return nil
	}

	return &entity.Book{
		ID:              data.ID,
		ISBN:            data.ISBN,
		Title:           data.Title,
		AuthorID:        data.AuthorID,
		CategoryID:      data.CategoryID,
		PublishedDate:   data.PublishedDate,
		Language:        entity.Language(data.Language),
		Pages:           data.Pages,
		Publisher:       data.Publisher,
		Description:     data.Description,
		CoverURL:        data.CoverURL,
		TotalCopies:     data.TotalCopies,
		AvailableCopies: data.AvailableCopies,
		CreatedAt:       data.CreatedAt,
	}
}

// fromBookDomain converts a domain Book entity to a GORM BookModel.
func fromBookDomain(data *entity.Book) *model.BookModel {
	if data == nil {
		return nil
	}

	return &model.BookModel{
		ID:              data.ID,
		ISBN:            data.ISBN,
		Title:           data.Title,
		AuthorID:        data.AuthorID,
		CategoryID:      data.CategoryID,
		PublishedDate:   data.PublishedDate,
		Language:        string(data.Language),
		Pages:           data.Pages,
		Publisher:       data.Publisher,
		Description:     data.Description,
		CoverURL:        data.CoverURL,
		TotalCopies:     data.TotalCopies,
		AvailableCopies: data.AvailableCopies,
		CreatedAt:       data.CreatedAt,
	}
}
