package impl

import (
	"context"
	"testing"
	"time"

	"biblio/internal/domain/entity"
	domainerrors "biblio/internal/domain/errors"
	"biblio/internal/domain/repository"
	"biblio/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var catalogueTestNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func newCatalogueService(authors *mockAuthorRepository, categories *mockCategoryRepository, books *mockBookRepository) usecase.CatalogueUsecase {
	return NewCatalogueService(authors, categories, books, fixedClock{now: catalogueTestNow})
}

func TestCatalogueService_CreateAuthor(t *testing.T) {
	authors := new(mockAuthorRepository)
	service := newCatalogueService(authors, new(mockCategoryRepository), new(mockBookRepository))

	ctx := context.Background()
	authors.On("Create", ctx, mock.AnythingOfType("*entity.Author")).Return(nil)

	author, err := service.CreateAuthor(ctx, &usecase.CreateAuthorInput{
		FirstName:   "Alexandre",
		LastName:    "Dumas",
		BirthDate:   time.Date(1802, time.July, 24, 0, 0, 0, 0, time.UTC),
		Nationality: "French",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, author.ID)
	assert.Equal(t, catalogueTestNow, author.CreatedAt)
	authors.AssertExpectations(t)
}

func TestCatalogueService_DeleteAuthor_WithBooks(t *testing.T) {
	authors := new(mockAuthorRepository)
	service := newCatalogueService(authors, new(mockCategoryRepository), new(mockBookRepository))

	ctx := context.Background()
	authorID := uuid.New()
	authors.On("FindByID", ctx, authorID).Return(&entity.Author{ID: authorID}, nil)
	authors.On("CountBooksByAuthor", ctx, authorID).Return(int64(1), nil)

	err := service.DeleteAuthor(ctx, authorID)
	assert.Equal(t, domainerrors.ErrAuthorHasBooks, err)
	authors.AssertNotCalled(t, "Delete", ctx, authorID)
}

func TestCatalogueService_DeleteAuthor_WithoutBooks(t *testing.T) {
	authors := new(mockAuthorRepository)
	service := newCatalogueService(authors, new(mockCategoryRepository), new(mockBookRepository))

	ctx := context.Background()
	authorID := uuid.New()
	authors.On("FindByID", ctx, authorID).Return(&entity.Author{ID: authorID}, nil)
	authors.On("CountBooksByAuthor", ctx, authorID).Return(int64(0), nil)
	authors.On("Delete", ctx, authorID).Return(nil)

	require.NoError(t, service.DeleteAuthor(ctx, authorID))
	authors.AssertExpectations(t)
}

func TestCatalogueService_CreateBook_Defaults(t *testing.T) {
	books := new(mockBookRepository)
	service := newCatalogueService(new(mockAuthorRepository), new(mockCategoryRepository), books)

	ctx := context.Background()
	books.On("Create", ctx, mock.AnythingOfType("*entity.Book")).Return(nil)

	book, err := service.CreateBook(ctx, &usecase.CreateBookInput{
		ISBN:     "9782253004226",
		Title:    "Les Trois Mousquetaires",
		AuthorID: uuid.New(),
		Language: entity.LanguageFR,
	})
	require.NoError(t, err)

	// Both counters default to one and the book starts fully available.
	assert.Equal(t, 1, book.TotalCopies)
	assert.Equal(t, 1, book.AvailableCopies)
	assert.Equal(t, catalogueTestNow, book.CreatedAt)
}

func TestCatalogueService_CreateBook_AvailableDefaultsToTotal(t *testing.T) {
	books := new(mockBookRepository)
	service := newCatalogueService(new(mockAuthorRepository), new(mockCategoryRepository), books)

	ctx := context.Background()
	books.On("Create", ctx, mock.AnythingOfType("*entity.Book")).Return(nil)

	total := 3
	book, err := service.CreateBook(ctx, &usecase.CreateBookInput{
		ISBN:        "9782253004226",
		Title:       "Les Trois Mousquetaires",
		AuthorID:    uuid.New(),
		Language:    entity.LanguageFR,
		TotalCopies: &total,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, book.TotalCopies)
	assert.Equal(t, 3, book.AvailableCopies)
}

func TestCatalogueService_CreateBook_RejectsInvariantViolation(t *testing.T) {
	books := new(mockBookRepository)
	service := newCatalogueService(new(mockAuthorRepository), new(mockCategoryRepository), books)

	ctx := context.Background()
	total, available := 2, 5
	book, err := service.CreateBook(ctx, &usecase.CreateBookInput{
		ISBN:            "9782253004226",
		Title:           "Les Trois Mousquetaires",
		AuthorID:        uuid.New(),
		Language:        entity.LanguageFR,
		TotalCopies:     &total,
		AvailableCopies: &available,
	})
	assert.Nil(t, book)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "BOOK_VALIDATION_FAILED", appErr.ErrorCode())
	assert.Contains(t, appErr.Details(), "available_copies")

	// The write must be rejected before it reaches the repository.
	books.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogueService_SetTotalCopies(t *testing.T) {
	books := new(mockBookRepository)
	service := newCatalogueService(new(mockAuthorRepository), new(mockCategoryRepository), books)

	ctx := context.Background()
	bookID := uuid.New()

	t.Run("raising the total keeps availability", func(t *testing.T) {
		books.On("FindByID", ctx, bookID).Return(&entity.Book{
			ID: bookID, ISBN: "9782253004226", Language: entity.LanguageFR,
			TotalCopies: 2, AvailableCopies: 2,
		}, nil).Once()
		books.On("Update", ctx, mock.AnythingOfType("*entity.Book")).Return(nil).Once()

		book, err := service.SetTotalCopies(ctx, bookID, 5)
		require.NoError(t, err)
		assert.Equal(t, 5, book.TotalCopies)
		assert.Equal(t, 2, book.AvailableCopies)
	})

	t.Run("lowering below available is rejected", func(t *testing.T) {
		books.On("FindByID", ctx, bookID).Return(&entity.Book{
			ID: bookID, ISBN: "9782253004226", Language: entity.LanguageFR,
			TotalCopies: 3, AvailableCopies: 3,
		}, nil).Once()

		book, err := service.SetTotalCopies(ctx, bookID, 1)
		assert.Nil(t, book)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "BOOK_VALIDATION_FAILED", appErr.ErrorCode())
	})
}

func TestCatalogueService_DeleteBook_ActiveLoanGuard(t *testing.T) {
	books := new(mockBookRepository)
	service := newCatalogueService(new(mockAuthorRepository), new(mockCategoryRepository), books)

	ctx := context.Background()
	bookID := uuid.New()
	stored := &entity.Book{ID: bookID, ISBN: "9782253004226", Language: entity.LanguageFR, TotalCopies: 1, AvailableCopies: 0}

	// One active loan: the delete is refused.
	books.On("FindByID", ctx, bookID).Return(stored, nil).Once()
	books.On("CountActiveLoans", ctx, bookID).Return(int64(1), nil).Once()

	err := service.DeleteBook(ctx, bookID)
	assert.Equal(t, domainerrors.ErrBookHasActiveLoans, err)
	books.AssertNotCalled(t, "Delete", ctx, bookID)

	// After the loan is returned the same delete succeeds.
	books.On("FindByID", ctx, bookID).Return(stored, nil).Once()
	books.On("CountActiveLoans", ctx, bookID).Return(int64(0), nil).Once()
	books.On("Delete", ctx, bookID).Return(nil).Once()

	require.NoError(t, service.DeleteBook(ctx, bookID))
	books.AssertExpectations(t)
}

func TestCatalogueService_DeleteCategory_InUse(t *testing.T) {
	categories := new(mockCategoryRepository)
	service := newCatalogueService(new(mockAuthorRepository), categories, new(mockBookRepository))

	ctx := context.Background()
	categoryID := uuid.New()
	categories.On("FindByID", ctx, categoryID).Return(&entity.Category{ID: categoryID, Name: "Aventure"}, nil)
	categories.On("Delete", ctx, categoryID).Return(repository.ErrCategoryInUse)

	err := service.DeleteCategory(ctx, categoryID)
	assert.Equal(t, domainerrors.ErrCategoryInUse, err)
}

func TestCatalogueService_GetBookAvailability(t *testing.T) {
	books := new(mockBookRepository)
	service := newCatalogueService(new(mockAuthorRepository), new(mockCategoryRepository), books)

	ctx := context.Background()
	bookID := uuid.New()
	books.On("FindByID", ctx, bookID).Return(&entity.Book{
		ID: bookID, ISBN: "9782253004226", Language: entity.LanguageFR,
		TotalCopies: 3, AvailableCopies: 1,
	}, nil)

	availability, err := service.GetBookAvailability(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, 3, availability.TotalCopies)
	assert.Equal(t, 1, availability.AvailableCopies)
	assert.True(t, availability.Available)
	assert.InDelta(t, 66.67, availability.OccupancyRate, 0.0001)
}

func TestCatalogueService_GetBook_NotFound(t *testing.T) {
	books := new(mockBookRepository)
	service := newCatalogueService(new(mockAuthorRepository), new(mockCategoryRepository), books)

	ctx := context.Background()
	bookID := uuid.New()
	books.On("FindByID", ctx, bookID).Return(nil, repository.ErrBookNotFound)

	book, err := service.GetBook(ctx, bookID)
	assert.Nil(t, book)
	assert.Equal(t, domainerrors.ErrBookNotFound, err)
}
