// Package errors defines the application-level error taxonomy: validation
// failures, referential conflicts, and availability errors, each carrying
// the HTTP status and business code the delivery layer responds with.
package errors

import (
	"net/http"

	"biblio/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Validation errors: a record failed a field-level invariant before a
	// write. The write is rejected in full; the caller corrects and retries.
	ErrBookValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"BOOK_VALIDATION_FAILED",
		"Book failed validation",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// Conflict errors: a delete would break referential integrity, or a
	// uniqueness constraint was violated. Never auto-resolved.
	ErrAuthorHasBooks = NewBaseError(
		http.StatusConflict,
		"AUTHOR_HAS_BOOKS",
		"Author cannot be deleted while books reference them",
		"",
	)

	ErrBookHasActiveLoans = NewBaseError(
		http.StatusConflict,
		"BOOK_HAS_ACTIVE_LOANS",
		"Book cannot be deleted while loans are active",
		"",
	)

	ErrCategoryInUse = NewBaseError(
		http.StatusConflict,
		"CATEGORY_IN_USE",
		"Category cannot be deleted while books reference it",
		"",
	)

	ErrISBNAlreadyExists = NewBaseError(
		http.StatusConflict,
		"ISBN_ALREADY_EXISTS",
		"A book with this ISBN already exists",
		"",
	)

	ErrAuthorAlreadyExists = NewBaseError(
		http.StatusConflict,
		"AUTHOR_ALREADY_EXISTS",
		"An author with this name and birth date already exists",
		"",
	)

	ErrCategoryNameTaken = NewBaseError(
		http.StatusConflict,
		"CATEGORY_NAME_TAKEN",
		"A category with this name already exists",
		"",
	)

	// Availability errors.
	ErrInsufficientCopies = NewBaseError(
		http.StatusConflict,
		"INSUFFICIENT_COPIES",
		"Not enough available copies for this checkout",
		"",
	)

	// Not-found errors.
	ErrAuthorNotFound = NewBaseError(
		http.StatusNotFound,
		"AUTHOR_NOT_FOUND",
		"Author not found",
		"",
	)

	ErrCategoryNotFound = NewBaseError(
		http.StatusNotFound,
		"CATEGORY_NOT_FOUND",
		"Category not found",
		"",
	)

	ErrBookNotFound = NewBaseError(
		http.StatusNotFound,
		"BOOK_NOT_FOUND",
		"Book not found",
		"",
	)

	ErrLoanNotFound = NewBaseError(
		http.StatusNotFound,
		"LOAN_NOT_FOUND",
		"Loan not found",
		"",
	)

	// Transaction-related errors: begin, rollback, or commit failed.
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	// General errors: the catch-all the error middleware answers with.
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
