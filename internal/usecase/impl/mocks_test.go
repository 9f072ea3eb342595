package impl

import (
	"context"
	"time"

	"biblio/config"
	"biblio/internal/domain/entity"
	"biblio/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// fixedClock pins the current time so overdue and penalty arithmetic is
// deterministic under test.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func newTestConfig() *config.Config {
	return &config.Config{
		Loan: &config.LoanPolicyConfig{
			PenaltyPerDay:   0.5,
			DefaultLoanDays: 14,
			ExtensionDays:   7,
		},
	}
}

type mockAuthorRepository struct {
	mock.Mock
}

func (m *mockAuthorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Author, error) {
	args := m.Called(ctx, id)
	author, _ := args.Get(0).(*entity.Author)

	return author, args.Error(1)
}

func (m *mockAuthorRepository) ListAll(ctx context.Context) ([]*entity.Author, error) {
	args := m.Called(ctx)
	authors, _ := args.Get(0).([]*entity.Author)

	return authors, args.Error(1)
}

func (m *mockAuthorRepository) Create(ctx context.Context, author *entity.Author) error {
	return m.Called(ctx, author).Error(0)
}

func (m *mockAuthorRepository) Update(ctx context.Context, author *entity.Author) error {
	return m.Called(ctx, author).Error(0)
}

func (m *mockAuthorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAuthorRepository) CountBooksByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, authorID)

	return args.Get(0).(int64), args.Error(1)
}

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*entity.Category)

	return category, args.Error(1)
}

func (m *mockCategoryRepository) ListAll(ctx context.Context) ([]*entity.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]*entity.Category)

	return categories, args.Error(1)
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockBookRepository struct {
	mock.Mock
}

func (m *mockBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	args := m.Called(ctx, id)
	book, _ := args.Get(0).(*entity.Book)

	return book, args.Error(1)
}

func (m *mockBookRepository) FindByISBN(ctx context.Context, isbn string) (*entity.Book, error) {
	args := m.Called(ctx, isbn)
	book, _ := args.Get(0).(*entity.Book)

	return book, args.Error(1)
}

func (m *mockBookRepository) ListAll(ctx context.Context) ([]*entity.Book, error) {
	args := m.Called(ctx)
	books, _ := args.Get(0).([]*entity.Book)

	return books, args.Error(1)
}

func (m *mockBookRepository) Create(ctx context.Context, book *entity.Book) error {
	return m.Called(ctx, book).Error(0)
}

func (m *mockBookRepository) Update(ctx context.Context, book *entity.Book) error {
	return m.Called(ctx, book).Error(0)
}

func (m *mockBookRepository) DecrementAvailableCopies(ctx context.Context, id uuid.UUID, qty int) error {
	return m.Called(ctx, id, qty).Error(0)
}

func (m *mockBookRepository) IncrementAvailableCopies(ctx context.Context, id uuid.UUID, qty int) error {
	return m.Called(ctx, id, qty).Error(0)
}

func (m *mockBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBookRepository) CountActiveLoans(ctx context.Context, bookID uuid.UUID) (int64, error) {
	args := m.Called(ctx, bookID)

	return args.Get(0).(int64), args.Error(1)
}

type mockLoanRepository struct {
	mock.Mock
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Loan, error) {
	args := m.Called(ctx, id)
	loan, _ := args.Get(0).(*entity.Loan)

	return loan, args.Error(1)
}

func (m *mockLoanRepository) FindByBook(ctx context.Context, bookID uuid.UUID, status entity.LoanStatus) ([]*entity.Loan, error) {
	args := m.Called(ctx, bookID, status)
	loans, _ := args.Get(0).([]*entity.Loan)

	return loans, args.Error(1)
}

func (m *mockLoanRepository) FindByCardNumber(ctx context.Context, cardNumber string) ([]*entity.Loan, error) {
	args := m.Called(ctx, cardNumber)
	loans, _ := args.Get(0).([]*entity.Loan)

	return loans, args.Error(1)
}

func (m *mockLoanRepository) FindByBorrowerEmail(ctx context.Context, email string) ([]*entity.Loan, error) {
	args := m.Called(ctx, email)
	loans, _ := args.Get(0).([]*entity.Loan)

	return loans, args.Error(1)
}

func (m *mockLoanRepository) FindActiveDueBefore(ctx context.Context, cutoff time.Time) ([]*entity.Loan, error) {
	args := m.Called(ctx, cutoff)
	loans, _ := args.Get(0).([]*entity.Loan)

	return loans, args.Error(1)
}

func (m *mockLoanRepository) Create(ctx context.Context, loan *entity.Loan) error {
	return m.Called(ctx, loan).Error(0)
}

func (m *mockLoanRepository) UpdateReturn(ctx context.Context, id uuid.UUID, returnedAt time.Time, status entity.LoanStatus) error {
	return m.Called(ctx, id, returnedAt, status).Error(0)
}

func (m *mockLoanRepository) UpdateDueAt(ctx context.Context, id uuid.UUID, dueAt time.Time) error {
	return m.Called(ctx, id, dueAt).Error(0)
}

func (m *mockLoanRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.LoanStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

// stubRepositoryFactory hands the test doubles to transactional callbacks.
type stubRepositoryFactory struct {
	authors    repository.AuthorRepository
	categories repository.CategoryRepository
	books      repository.BookRepository
	loans      repository.LoanRepository
}

func (f *stubRepositoryFactory) NewAuthorRepository() repository.AuthorRepository {
	return f.authors
}

func (f *stubRepositoryFactory) NewCategoryRepository() repository.CategoryRepository {
	return f.categories
}

func (f *stubRepositoryFactory) NewBookRepository() repository.BookRepository {
	return f.books
}

func (f *stubRepositoryFactory) NewLoanRepository() repository.LoanRepository {
	return f.loans
}

// stubTxManager runs the callback directly against the stub factory,
// standing in for a real transaction.
type stubTxManager struct {
	factory repository.RepositoryFactory
}

func (m *stubTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}
