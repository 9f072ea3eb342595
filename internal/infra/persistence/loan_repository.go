package persistence

import (
	"context"
	"time"

	"biblio/internal/domain/entity"
	domainerrors "biblio/internal/domain/errors"
	"biblio/internal/domain/repository"
	"biblio/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// loanRepository implements the repository.LoanRepository interface.
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository is the constructor for loanRepository.
func NewLoanRepository(db *gorm.DB) repository.LoanRepository {
	return &loanRepository{
		db: db,
	}
}

// FindByID retrieves a loan by its unique ID.
func (repo *loanRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Loan, error) {
	var loanM model.LoanModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&loanM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLoanNotFound
		}

		return nil, errors.Wrap(err, "failed to find loan by ID")
	}

	return toLoanDomain(&loanM), nil
}

// FindByBook retrieves the loans on a book, newest first. A non-empty status
// narrows the result to that stored status.
func (repo *loanRepository) FindByBook(ctx context.Context, bookID uuid.UUID, status entity.LoanStatus) ([]*entity.Loan, error) {
	query := repo.db.WithContext(ctx).
		Where("book_id = ?", bookID)
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var loanModels []*model.LoanModel
	if err := query.
		Order("loaned_at DESC").
		Find(&loanModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find loans by book")
	}

	return toLoanDomainList(loanModels), nil
}

// FindByCardNumber retrieves the loans held under a library card, newest first.
func (repo *loanRepository) FindByCardNumber(ctx context.Context, cardNumber string) ([]*entity.Loan, error) {
	var loanModels []*model.LoanModel

	if err := repo.db.WithContext(ctx).
		Where("card_number = ?", cardNumber).
		Order("loaned_at DESC").
		Find(&loanModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find loans by card number")
	}

	return toLoanDomainList(loanModels), nil
}

// FindByBorrowerEmail retrieves the loans held under a borrower email, newest first.
func (repo *loanRepository) FindByBorrowerEmail(ctx context.Context, email string) ([]*entity.Loan, error) {
	var loanModels []*model.LoanModel

	if err := repo.db.WithContext(ctx).
		Where("borrower_email = ?", email).
		Order("loaned_at DESC").
		Find(&loanModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find loans by borrower email")
	}

	return toLoanDomainList(loanModels), nil
}

// FindActiveDueBefore retrieves ACTIVE loans whose due date has passed.
func (repo *loanRepository) FindActiveDueBefore(ctx context.Context, cutoff time.Time) ([]*entity.Loan, error) {
	var loanModels []*model.LoanModel

	if err := repo.db.WithContext(ctx).
		Where("status = ? AND due_at IS NOT NULL AND due_at < ?", string(entity.LoanStatusActive), cutoff).
		Order("due_at").
		Find(&loanModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find overdue candidates")
	}

	return toLoanDomainList(loanModels), nil
}

// Create persists a new loan.
func (repo *loanRepository) Create(ctx context.Context, loan *entity.Loan) error {
	loanM := fromLoanDomain(loan)

	if err := repo.db.WithContext(ctx).Create(loanM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrBookNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WithDetails("missing required loan information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create loan")
	}

	return nil
}

// UpdateReturn writes returned_at and status in a single statement.
func (repo *loanRepository) UpdateReturn(ctx context.Context, id uuid.UUID, returnedAt time.Time, status entity.LoanStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.LoanModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"returned_at": returnedAt,
			"status":      string(status),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update loan return")
	}

	if result.RowsAffected == 0 {
		return repository.ErrLoanNotFound
	}

	return nil
}

// UpdateDueAt writes only the due_at field.
func (repo *loanRepository) UpdateDueAt(ctx context.Context, id uuid.UUID, dueAt time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.LoanModel{}).
		Where("id = ?", id).
		Update("due_at", dueAt)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update loan due date")
	}

	if result.RowsAffected == 0 {
		return repository.ErrLoanNotFound
	}

	return nil
}

// UpdateStatus writes only the status field.
func (repo *loanRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.LoanStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.LoanModel{}).
		Where("id = ?", id).
		Update("status", string(status))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update loan status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrLoanNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toLoanDomain converts a GORM LoanModel to a domain Loan entity.
func toLoanDomain(data *model.LoanModel) *entity.Loan {
	if data == nil {
		return nil
	}

	return &entity.Loan{
		ID:               data.ID,
		BookID:           data.BookID,
		BorrowerFullName: data.BorrowerFullName,
		BorrowerEmail:    data.BorrowerEmail,
		CardNumber:       data.CardNumber,
		LoanedAt:         data.LoanedAt,
		DueAt:            data.DueAt,
		ReturnedAt:       data.ReturnedAt,
		Status:           entity.LoanStatus(data.Status),
		LibrarianNotes:   data.LibrarianNotes,
	}
}

func toLoanDomainList(loanModels []*model.LoanModel) []*entity.Loan {
	loans := make([]*entity.Loan, 0, len(loanModels))
	for _, loanM := range loanModels {
		loans = append(loans, toLoanDomain(loanM))
	}

	return loans
}

// fromLoanDomain converts a domain Loan entity to a GORM LoanModel.
func fromLoanDomain(data *entity.Loan) *model.LoanModel {
	if data == nil {
		return nil
	}

	return &model.LoanModel{
		ID:               data.ID,
		BookID:           data.BookID,
		BorrowerFullName: data.BorrowerFullName,
		BorrowerEmail:    data.BorrowerEmail,
		CardNumber:       data.CardNumber,
		LoanedAt:         data.LoanedAt,
		DueAt:            data.DueAt,
		ReturnedAt:       data.ReturnedAt,
		Status:           string(data.Status),
		LibrarianNotes:   data.LibrarianNotes,
	}
}
