package handler

import (
	"log/slog"
	"net/http"
	"time"

	"biblio/internal/delivery/http/response"
	"biblio/internal/domain/entity"
	"biblio/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// LoanHandlerParams holds dependencies for LoanHandler, injected by Fx.
type LoanHandlerParams struct {
	fx.In

	LoanUC usecase.LoanUsecase
	Logger *slog.Logger
}

// LoanHandler holds dependencies for loan-related handlers
type LoanHandler struct {
	loanUC usecase.LoanUsecase
	logger *slog.Logger
}

// NewLoanHandler is the constructor for LoanHandler
func NewLoanHandler(params LoanHandlerParams) *LoanHandler {
	return &LoanHandler{
		loanUC: params.LoanUC,
		logger: params.Logger,
	}
}

// CheckoutRequest represents the request body for lending a copy
type CheckoutRequest struct {
	BookID           string  `json:"book_id" validate:"required,uuid"`
	BorrowerFullName string  `json:"borrower_full_name" validate:"required,max=255"`
	BorrowerEmail    string  `json:"borrower_email" validate:"required,email"`
	CardNumber       string  `json:"card_number" validate:"required,max=50"`
	DueAt            *string `json:"due_at,omitempty" validate:"omitempty,datetime=2006-01-02"`
	LibrarianNotes   string  `json:"librarian_notes"`
}

// ExtendLoanRequest represents the request body for a due-date extension.
// Zero days means the configured default.
type ExtendLoanRequest struct {
	Days int `json:"days" validate:"gte=0"`
}

// Checkout handles lending one copy of a book
func (h *LoanHandler) Checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid book ID")
	}

	input := &usecase.CheckoutInput{
		BookID:           bookID,
		BorrowerFullName: req.BorrowerFullName,
		BorrowerEmail:    req.BorrowerEmail,
		CardNumber:       req.CardNumber,
		LibrarianNotes:   req.LibrarianNotes,
	}
	if req.DueAt != nil {
		dueAt, err := time.Parse(dateLayout, *req.DueAt)
		if err != nil {
			return response.BadRequest(c, "INVALID_DATE", "Invalid due date")
		}
		input.DueAt = &dueAt
	}

	loan, err := h.loanUC.Checkout(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, loan, "Loan created successfully")
}

// Return handles returning a loaned copy
func (h *LoanHandler) Return(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid loan ID")
	}

	loan, err := h.loanUC.Return(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, loan, "Loan returned successfully")
}

// Extend handles advancing a loan's due date
func (h *LoanHandler) Extend(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid loan ID")
	}

	var req ExtendLoanRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid extension input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	loan, err := h.loanUC.Extend(c.Request().Context(), id, req.Days)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, loan, "Loan extended successfully")
}

// GetLoan handles retrieving a loan with its overdue accounting
func (h *LoanHandler) GetLoan(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid loan ID")
	}

	details, err := h.loanUC.GetLoan(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, details, "Loan retrieved successfully")
}

// ListLoans handles the loan listings. Exactly one of the book_id,
// card_number, or borrower_email query parameters selects the listing; a
// status parameter narrows the book listing to a stored status.
func (h *LoanHandler) ListLoans(c echo.Context) error {
	ctx := c.Request().Context()

	if bookIDParam := c.QueryParam("book_id"); bookIDParam != "" {
		bookID, err := uuid.Parse(bookIDParam)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid book ID")
		}

		status := entity.LoanStatus(c.QueryParam("status"))
		details, err := h.loanUC.ListByBook(ctx, bookID, status)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		return response.Success(c, http.StatusOK, details, "Loans retrieved successfully")
	}

	if cardNumber := c.QueryParam("card_number"); cardNumber != "" {
		details, err := h.loanUC.ListByCardNumber(ctx, cardNumber)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		return response.Success(c, http.StatusOK, details, "Loans retrieved successfully")
	}

	if email := c.QueryParam("borrower_email"); email != "" {
		details, err := h.loanUC.ListByBorrowerEmail(ctx, email)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		return response.Success(c, http.StatusOK, details, "Loans retrieved successfully")
	}

	return response.BadRequest(c, "MISSING_FILTER", "One of book_id, card_number, or borrower_email is required")
}

// MarkOverdue handles the overdue sweep, stamping the stored OVERDUE status
// on every active loan past its due date
func (h *LoanHandler) MarkOverdue(c echo.Context) error {
	marked, err := h.loanUC.MarkOverdueLoans(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"marked": marked}, "Overdue loans marked successfully")
}
