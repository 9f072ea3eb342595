package repository

import (
	"context"
	"errors"
	"time"

	"biblio/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrLoanNotFound is a domain-specific error returned when a loan is not found.
var ErrLoanNotFound = errors.New("loan not found")

// LoanRepository defines the standard operations for loan persistence.
// Listings are ordered by loaned-at descending, newest first.
type LoanRepository interface {
	// FindByID retrieves a single loan by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Loan, error)

	// FindByBook retrieves the loans on a book. A non-empty status narrows
	// the result to that stored status.
	FindByBook(ctx context.Context, bookID uuid.UUID, status entity.LoanStatus) ([]*entity.Loan, error)

	// FindByCardNumber retrieves the loans held under a library card.
	FindByCardNumber(ctx context.Context, cardNumber string) ([]*entity.Loan, error)

	// FindByBorrowerEmail retrieves the loans held under a borrower email.
	FindByBorrowerEmail(ctx context.Context, email string) ([]*entity.Loan, error)

	// FindActiveDueBefore retrieves ACTIVE loans whose due date has passed,
	// feeding the overdue sweep.
	FindActiveDueBefore(ctx context.Context, cutoff time.Time) ([]*entity.Loan, error)

	// Create persists a new loan entity to the storage.
	Create(ctx context.Context, loan *entity.Loan) error

	// UpdateReturn writes returned_at and status in a single statement;
	// the two fields must never be committed independently.
	UpdateReturn(ctx context.Context, id uuid.UUID, returnedAt time.Time, status entity.LoanStatus) error

	// UpdateDueAt writes only the due_at field, for extensions.
	UpdateDueAt(ctx context.Context, id uuid.UUID, dueAt time.Time) error

	// UpdateStatus writes only the status field, for the overdue sweep.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.LoanStatus) error
}
