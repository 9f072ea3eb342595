package persistence

import (
	"context"

	domainerrors "biblio/internal/domain/errors"
	"biblio/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// It holds one GORM transaction object and hands out repository instances
// bound to that single transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB
}

// NewAuthorRepository creates an author repository bound to the transaction.
func (f *gormRepositoryFactory) NewAuthorRepository() repository.AuthorRepository {
	return NewAuthorRepository(f.tx)
}

// NewCategoryRepository creates a category repository bound to the transaction.
func (f *gormRepositoryFactory) NewCategoryRepository() repository.CategoryRepository {
	return NewCategoryRepository(f.tx)
}

// NewBookRepository creates a book repository bound to the transaction.
func (f *gormRepositoryFactory) NewBookRepository() repository.BookRepository {
	return NewBookRepository(f.tx)
}

// NewLoanRepository creates a loan repository bound to the transaction.
func (f *gormRepositoryFactory) NewLoanRepository() repository.LoanRepository {
	return NewLoanRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrapf(domainerrors.ErrTransactionFailed, "begin: %v", tx.Error)
	}

	// Roll back on panic so a failed callback never leaves the transaction open.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	factory := &gormRepositoryFactory{tx: tx}

	err := fn(factory)
	if err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			// Keep the business error; the rollback failure goes into the message.
			return errors.Wrapf(err, "transaction rollback failed: %v", rbErr)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrapf(domainerrors.ErrTransactionFailed, "commit: %v", err)
	}

	return nil
}
