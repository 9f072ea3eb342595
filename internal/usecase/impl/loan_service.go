package impl

import (
	"context"
	"errors"

	"biblio/config"
	"biblio/internal/domain/entity"
	domainerrors "biblio/internal/domain/errors"
	"biblio/internal/domain/repository"
	"biblio/internal/domain/service"
	"biblio/internal/usecase"

	"github.com/google/uuid"
)

type loanService struct {
	loanRepo  repository.LoanRepository
	bookRepo  repository.BookRepository
	txManager repository.TransactionManager
	clock     service.Clock
	config    *config.Config
}

// NewLoanService creates a new loan service instance
func NewLoanService(
	loanRepo repository.LoanRepository,
	bookRepo repository.BookRepository,
	txManager repository.TransactionManager,
	clock service.Clock,
	cfg *config.Config,
) usecase.LoanUsecase {
	// If the loan policy is not configured, fall back to the defaults.
	if cfg.Loan == nil {
		cfg.Loan = &config.LoanPolicyConfig{
			PenaltyPerDay: entity.DefaultPenaltyPerDay,
			ExtensionDays: entity.DefaultExtensionDays,
		}
	}

	return &loanService{
		loanRepo:  loanRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
		clock:     clock,
		config:    cfg,
	}
}

// Checkout lends one copy of a book. The ACTIVE loan row and the
// availability decrement commit in the same transaction: a crash between
// the two is never observable. The decrement itself is a guarded relative
// write, so two checkouts racing for the last copy serialize on the row and
// exactly one of them gets it.
func (s *loanService) Checkout(ctx context.Context, input *usecase.CheckoutInput) (*entity.Loan, error) {
	now := s.clock.Now()

	dueAt := input.DueAt
	if dueAt == nil && s.config.Loan.DefaultLoanDays > 0 {
		due := now.AddDate(0, 0, s.config.Loan.DefaultLoanDays)
		dueAt = &due
	}

	loan := &entity.Loan{
		ID:               uuid.New(),
		BookID:           input.BookID,
		BorrowerFullName: input.BorrowerFullName,
		BorrowerEmail:    input.BorrowerEmail,
		CardNumber:       input.CardNumber,
		LoanedAt:         now,
		DueAt:            dueAt,
		Status:           entity.LoanStatusActive,
		LibrarianNotes:   input.LibrarianNotes,
	}

	err := s.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.NewBookRepository().DecrementAvailableCopies(ctx, input.BookID, 1); err != nil {
			if errors.Is(err, repository.ErrBookNotFound) {
				return domainerrors.ErrBookNotFound
			}
			if errors.Is(err, repository.ErrInsufficientCopies) {
				return domainerrors.ErrInsufficientCopies
			}

			return err
		}

		return f.NewLoanRepository().Create(ctx, loan)
	})
	if err != nil {
		return nil, err
	}

	return loan, nil
}

// Return marks a loan RETURNED and releases exactly one copy back to
// availability, both inside one transaction. Returning an already-returned
// loan commits nothing and leaves availability untouched.
func (s *loanService) Return(ctx context.Context, loanID uuid.UUID) (*entity.Loan, error) {
	var returned *entity.Loan

	err := s.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		loanRepo := f.NewLoanRepository()

		loan, err := loanRepo.FindByID(ctx, loanID)
		if err != nil {
			if errors.Is(err, repository.ErrLoanNotFound) {
				return domainerrors.ErrLoanNotFound
			}

			return err
		}
		returned = loan

		if !loan.MarkReturned(s.clock.Now()) {
			// Already returned: idempotent no-op.
			return nil
		}

		if err := loanRepo.UpdateReturn(ctx, loan.ID, *loan.ReturnedAt, loan.Status); err != nil {
			return err
		}

		return f.NewBookRepository().IncrementAvailableCopies(ctx, loan.BookID, 1)
	})
	if err != nil {
		return nil, err
	}

	return returned, nil
}

// Extend advances a loan's due date, persisting only that field. A zero or
// negative days value falls back to the configured default. A loan without
// a due date is returned unchanged.
func (s *loanService) Extend(ctx context.Context, loanID uuid.UUID, days int) (*entity.Loan, error) {
	if days <= 0 {
		days = s.config.Loan.ExtensionDays
	}

	loan, err := s.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, repository.ErrLoanNotFound) {
			return nil, domainerrors.ErrLoanNotFound
		}

		return nil, err
	}

	if !loan.Extend(days) {
		return loan, nil
	}

	if err := s.loanRepo.UpdateDueAt(ctx, loan.ID, *loan.DueAt); err != nil {
		return nil, err
	}

	return loan, nil
}

// GetLoan retrieves a loan with its computed overdue accounting.
func (s *loanService) GetLoan(ctx context.Context, loanID uuid.UUID) (*usecase.LoanDetails, error) {
	loan, err := s.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, repository.ErrLoanNotFound) {
			return nil, domainerrors.ErrLoanNotFound
		}

		return nil, err
	}

	return s.toDetails(loan), nil
}

// ListByBook retrieves the loans on a book, optionally narrowed to a
// stored status.
func (s *loanService) ListByBook(ctx context.Context, bookID uuid.UUID, status entity.LoanStatus) ([]*usecase.LoanDetails, error) {
	loans, err := s.loanRepo.FindByBook(ctx, bookID, status)
	if err != nil {
		return nil, err
	}

	return s.toDetailsList(loans), nil
}

// ListByCardNumber retrieves the loans held under a library card.
func (s *loanService) ListByCardNumber(ctx context.Context, cardNumber string) ([]*usecase.LoanDetails, error) {
	loans, err := s.loanRepo.FindByCardNumber(ctx, cardNumber)
	if err != nil {
		return nil, err
	}

	return s.toDetailsList(loans), nil
}

// ListByBorrowerEmail retrieves the loans held under a borrower email.
func (s *loanService) ListByBorrowerEmail(ctx context.Context, email string) ([]*usecase.LoanDetails, error) {
	loans, err := s.loanRepo.FindByBorrowerEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return s.toDetailsList(loans), nil
}

// MarkOverdueLoans stamps the stored OVERDUE status on every ACTIVE loan
// whose due date has passed. The stored status is only a cache of the
// read-time derivation; each loan is a single-field write.
func (s *loanService) MarkOverdueLoans(ctx context.Context) (int, error) {
	loans, err := s.loanRepo.FindActiveDueBefore(ctx, s.clock.Now())
	if err != nil {
		return 0, err
	}

	marked := 0
	for _, loan := range loans {
		if err := s.loanRepo.UpdateStatus(ctx, loan.ID, entity.LoanStatusOverdue); err != nil {
			return marked, err
		}
		marked++
	}

	return marked, nil
}

func (s *loanService) toDetails(loan *entity.Loan) *usecase.LoanDetails {
	now := s.clock.Now()

	return &usecase.LoanDetails{
		Loan:          loan,
		IsOverdue:     loan.IsOverdue(now),
		LateDays:      loan.LateDays(now),
		PenaltyAmount: loan.PenaltyAmount(now, s.config.Loan.PenaltyPerDay),
	}
}

func (s *loanService) toDetailsList(loans []*entity.Loan) []*usecase.LoanDetails {
	details := make([]*usecase.LoanDetails, 0, len(loans))
	for _, loan := range loans {
		details = append(details, s.toDetails(loan))
	}

	return details
}
