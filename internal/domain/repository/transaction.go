package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
// Checkout (create loan + decrement availability) and return (mark returned +
// increment availability) each commit through a single Execute call, so the
// paired writes can never be observed half-applied.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides a way to get repository instances that are bound to a specific transaction.
// This ensures all repository operations within a transaction use the same database connection.
type RepositoryFactory interface {
	// NewAuthorRepository returns an AuthorRepository instance bound to the current transaction.
	NewAuthorRepository() AuthorRepository

	// NewCategoryRepository returns a CategoryRepository instance bound to the current transaction.
	NewCategoryRepository() CategoryRepository

	// NewBookRepository returns a BookRepository instance bound to the current transaction.
	NewBookRepository() BookRepository

	// NewLoanRepository returns a LoanRepository instance bound to the current transaction.
	NewLoanRepository() LoanRepository
}
