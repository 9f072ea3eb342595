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

var loanServiceTestNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func newLoanService(loans *mockLoanRepository, books *mockBookRepository) usecase.LoanUsecase {
	txManager := &stubTxManager{factory: &stubRepositoryFactory{books: books, loans: loans}}

	return NewLoanService(loans, books, txManager, fixedClock{now: loanServiceTestNow}, newTestConfig())
}

func pastTime(days int) *time.Time {
	t := loanServiceTestNow.AddDate(0, 0, -days)

	return &t
}

func TestLoanService_Checkout(t *testing.T) {
	loans := new(mockLoanRepository)
	books := new(mockBookRepository)
	service := newLoanService(loans, books)

	ctx := context.Background()
	bookID := uuid.New()
	books.On("DecrementAvailableCopies", ctx, bookID, 1).Return(nil)
	loans.On("Create", ctx, mock.AnythingOfType("*entity.Loan")).Return(nil)

	loan, err := service.Checkout(ctx, &usecase.CheckoutInput{
		BookID:           bookID,
		BorrowerFullName: "Marie Curie",
		BorrowerEmail:    "marie@example.org",
		CardNumber:       "C-00042",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.LoanStatusActive, loan.Status)
	assert.Equal(t, loanServiceTestNow, loan.LoanedAt)
	// The due date comes from the configured default loan period.
	require.NotNil(t, loan.DueAt)
	assert.Equal(t, loanServiceTestNow.AddDate(0, 0, 14), *loan.DueAt)

	// Exactly one copy was consumed, through the single guarded decrement.
	books.AssertNumberOfCalls(t, "DecrementAvailableCopies", 1)
	loans.AssertExpectations(t)
}

func TestLoanService_Checkout_ExplicitDueDate(t *testing.T) {
	loans := new(mockLoanRepository)
	books := new(mockBookRepository)
	service := newLoanService(loans, books)

	ctx := context.Background()
	bookID := uuid.New()
	books.On("DecrementAvailableCopies", ctx, bookID, 1).Return(nil)
	loans.On("Create", ctx, mock.AnythingOfType("*entity.Loan")).Return(nil)

	due := loanServiceTestNow.AddDate(0, 0, 30)
	loan, err := service.Checkout(ctx, &usecase.CheckoutInput{
		BookID:           bookID,
		BorrowerFullName: "Marie Curie",
		BorrowerEmail:    "marie@example.org",
		CardNumber:       "C-00042",
		DueAt:            &due,
	})
	require.NoError(t, err)
	assert.Equal(t, due, *loan.DueAt)
}

func TestLoanService_Checkout_NoCopyAvailable(t *testing.T) {
	loans := new(mockLoanRepository)
	books := new(mockBookRepository)
	service := newLoanService(loans, books)

	ctx := context.Background()
	bookID := uuid.New()
	books.On("DecrementAvailableCopies", ctx, bookID, 1).Return(repository.ErrInsufficientCopies)

	loan, err := service.Checkout(ctx, &usecase.CheckoutInput{BookID: bookID})
	assert.Nil(t, loan)
	assert.Equal(t, domainerrors.ErrInsufficientCopies, err)

	// The refused decrement leaves no loan behind.
	loans.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// Two checkouts racing for the last copy both reach the repository, but the
// guarded decrement admits only the first; the loser creates no loan. This
// is the whole point of delegating the counter move to a single relative
// statement instead of writing back a value read earlier in the transaction.
func TestLoanService_Checkout_LastCopyAdmitsOnlyOne(t *testing.T) {
	loans := new(mockLoanRepository)
	books := new(mockBookRepository)
	service := newLoanService(loans, books)

	ctx := context.Background()
	bookID := uuid.New()
	books.On("DecrementAvailableCopies", ctx, bookID, 1).Return(nil).Once()
	books.On("DecrementAvailableCopies", ctx, bookID, 1).Return(repository.ErrInsufficientCopies).Once()
	loans.On("Create", ctx, mock.AnythingOfType("*entity.Loan")).Return(nil).Once()

	first, err := service.Checkout(ctx, &usecase.CheckoutInput{BookID: bookID})
	require.NoError(t, err)
	assert.Equal(t, entity.LoanStatusActive, first.Status)

	second, err := service.Checkout(ctx, &usecase.CheckoutInput{BookID: bookID})
	assert.Nil(t, second)
	assert.Equal(t, domainerrors.ErrInsufficientCopies, err)

	// One loan for one copy.
	loans.AssertNumberOfCalls(t, "Create", 1)
	books.AssertExpectations(t)
}

func TestLoanService_Return(t *testing.T) {
	loans := new(mockLoanRepository)
	books := new(mockBookRepository)
	service := newLoanService(loans, books)

	ctx := context.Background()
	loanID := uuid.New()
	bookID := uuid.New()
	loans.On("FindByID", ctx, loanID).Return(&entity.Loan{
		ID: loanID, BookID: bookID, Status: entity.LoanStatusActive, DueAt: pastTime(3),
	}, nil)
	loans.On("UpdateReturn", ctx, loanID, loanServiceTestNow, entity.LoanStatusReturned).Return(nil)
	books.On("IncrementAvailableCopies", ctx, bookID, 1).Return(nil)

	loan, err := service.Return(ctx, loanID)
	require.NoError(t, err)
	assert.Equal(t, entity.LoanStatusReturned, loan.Status)
	require.NotNil(t, loan.ReturnedAt)
	assert.Equal(t, loanServiceTestNow, *loan.ReturnedAt)

	// Exactly one copy was released.
	books.AssertCalled(t, "IncrementAvailableCopies", ctx, bookID, 1)
}

func TestLoanService_Return_AlreadyReturnedIsNoop(t *testing.T) {
	loans := new(mockLoanRepository)
	books := new(mockBookRepository)
	service := newLoanService(loans, books)

	ctx := context.Background()
	loanID := uuid.New()
	returnedAt := loanServiceTestNow.AddDate(0, 0, -1)
	loans.On("FindByID", ctx, loanID).Return(&entity.Loan{
		ID: loanID, BookID: uuid.New(), Status: entity.LoanStatusReturned, ReturnedAt: &returnedAt,
	}, nil)

	loan, err := service.Return(ctx, loanID)
	require.NoError(t, err)

	// Terminal state unchanged: same timestamp, no writes, no counter move.
	assert.Equal(t, returnedAt, *loan.ReturnedAt)
	loans.AssertNotCalled(t, "UpdateReturn", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	books.AssertNotCalled(t, "IncrementAvailableCopies", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoanService_Extend(t *testing.T) {
	loans := new(mockLoanRepository)
	books := new(mockBookRepository)
	service := newLoanService(loans, books)

	ctx := context.Background()
	loanID := uuid.New()
	due := loanServiceTestNow.AddDate(0, 0, 2)

	t.Run("uses the configured default when days is zero", func(t *testing.T) {
		d := due
		loans.On("FindByID", ctx, loanID).Return(&entity.Loan{
			ID: loanID, Status: entity.LoanStatusActive, DueAt: &d,
		}, nil).Once()
		loans.On("UpdateDueAt", ctx, loanID, due.AddDate(0, 0, 7)).Return(nil).Once()

		loan, err := service.Extend(ctx, loanID, 0)
		require.NoError(t, err)
		assert.Equal(t, due.AddDate(0, 0, 7), *loan.DueAt)
	})

	t.Run("advances by the requested days", func(t *testing.T) {
		d := due
		loans.On("FindByID", ctx, loanID).Return(&entity.Loan{
			ID: loanID, Status: entity.LoanStatusActive, DueAt: &d,
		}, nil).Once()
		loans.On("UpdateDueAt", ctx, loanID, due.AddDate(0, 0, 3)).Return(nil).Once()

		loan, err := service.Extend(ctx, loanID, 3)
		require.NoError(t, err)
		assert.Equal(t, due.AddDate(0, 0, 3), *loan.DueAt)
	})

	t.Run("loan without a due date is unchanged", func(t *testing.T) {
		// Fresh mocks so AssertNotCalled is not tripped by the
		// UpdateDueAt calls recorded in the sibling subtests above.
		loans := new(mockLoanRepository)
		books := new(mockBookRepository)
		service := newLoanService(loans, books)

		loans.On("FindByID", ctx, loanID).Return(&entity.Loan{
			ID: loanID, Status: entity.LoanStatusActive,
		}, nil).Once()

		loan, err := service.Extend(ctx, loanID, 3)
		require.NoError(t, err)
		assert.Nil(t, loan.DueAt)
		loans.AssertNotCalled(t, "UpdateDueAt", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLoanService_GetLoan_ComputesOverdueAccounting(t *testing.T) {
	loans := new(mockLoanRepository)
	books := new(mockBookRepository)
	service := newLoanService(loans, books)

	ctx := context.Background()
	loanID := uuid.New()
	loans.On("FindByID", ctx, loanID).Return(&entity.Loan{
		ID: loanID, Status: entity.LoanStatusActive, DueAt: pastTime(3),
	}, nil)

	details, err := service.GetLoan(ctx, loanID)
	require.NoError(t, err)
	assert.True(t, details.IsOverdue)
	assert.Equal(t, 3, details.LateDays)
	assert.InDelta(t, 1.5, details.PenaltyAmount, 0.0001)
}

func TestLoanService_MarkOverdueLoans(t *testing.T) {
	loans := new(mockLoanRepository)
	books := new(mockBookRepository)
	service := newLoanService(loans, books)

	ctx := context.Background()
	first := &entity.Loan{ID: uuid.New(), Status: entity.LoanStatusActive, DueAt: pastTime(5)}
	second := &entity.Loan{ID: uuid.New(), Status: entity.LoanStatusActive, DueAt: pastTime(1)}

	loans.On("FindActiveDueBefore", ctx, loanServiceTestNow).Return([]*entity.Loan{first, second}, nil)
	loans.On("UpdateStatus", ctx, first.ID, entity.LoanStatusOverdue).Return(nil)
	loans.On("UpdateStatus", ctx, second.ID, entity.LoanStatusOverdue).Return(nil)

	marked, err := service.MarkOverdueLoans(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, marked)
	loans.AssertExpectations(t)
}

func TestLoanService_ListByBook(t *testing.T) {
	loans := new(mockLoanRepository)
	books := new(mockBookRepository)
	service := newLoanService(loans, books)

	ctx := context.Background()
	bookID := uuid.New()
	loans.On("FindByBook", ctx, bookID, entity.LoanStatusActive).Return([]*entity.Loan{
		{ID: uuid.New(), BookID: bookID, Status: entity.LoanStatusActive},
	}, nil)

	details, err := service.ListByBook(ctx, bookID, entity.LoanStatusActive)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.False(t, details[0].IsOverdue)
	assert.Zero(t, details[0].PenaltyAmount)
}
