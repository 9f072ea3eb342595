package usecase

import (
	"context"
	"time"

	"biblio/internal/domain/entity"

	"github.com/google/uuid"
)

// CheckoutInput represents the input for lending one copy of a book.
type CheckoutInput struct {
	BookID           uuid.UUID  `json:"book_id"`
	BorrowerFullName string     `json:"borrower_full_name"`
	BorrowerEmail    string     `json:"borrower_email"`
	CardNumber       string     `json:"card_number"`
	DueAt            *time.Time `json:"due_at,omitempty"`
	LibrarianNotes   string     `json:"librarian_notes"`
}

// LoanDetails pairs a stored loan with its read-time accounting: the
// derived overdue flag, whole late days, and the penalty owed.
type LoanDetails struct {
	Loan          *entity.Loan `json:"loan"`
	IsOverdue     bool         `json:"is_overdue"`
	LateDays      int          `json:"late_days"`
	PenaltyAmount float64      `json:"penalty_amount"`
}

// LoanUsecase defines the loan lifecycle use cases. Checkout and Return
// pair the loan write with the matching availability counter move inside
// one transaction: every created loan consumes exactly one copy and every
// return releases exactly one.
type LoanUsecase interface {
	// Checkout lends one available copy of a book, creating an ACTIVE loan.
	Checkout(ctx context.Context, input *CheckoutInput) (*entity.Loan, error)

	// Return marks a loan RETURNED and releases its copy. Returning an
	// already-returned loan is a no-op.
	Return(ctx context.Context, loanID uuid.UUID) (*entity.Loan, error)

	// Extend advances the due date by the given days, or by the configured
	// default when days is zero. A loan without a due date is unchanged.
	Extend(ctx context.Context, loanID uuid.UUID, days int) (*entity.Loan, error)

	// GetLoan retrieves a loan with its computed overdue accounting.
	GetLoan(ctx context.Context, loanID uuid.UUID) (*LoanDetails, error)

	// ListByBook retrieves the loans on a book, optionally narrowed to a
	// stored status.
	ListByBook(ctx context.Context, bookID uuid.UUID, status entity.LoanStatus) ([]*LoanDetails, error)

	// ListByCardNumber retrieves the loans held under a library card.
	ListByCardNumber(ctx context.Context, cardNumber string) ([]*LoanDetails, error)

	// ListByBorrowerEmail retrieves the loans held under a borrower email.
	ListByBorrowerEmail(ctx context.Context, email string) ([]*LoanDetails, error)

	// MarkOverdueLoans stamps the stored OVERDUE status on every ACTIVE
	// loan whose due date has passed, and returns how many were marked.
	// The read-time derivation stays authoritative; this only reconciles
	// the stored cache. Scheduling is left to an external caller.
	MarkOverdueLoans(ctx context.Context) (int, error)
}
