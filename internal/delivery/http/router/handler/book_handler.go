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

// BookHandlerParams holds dependencies for BookHandler, injected by Fx.
type BookHandlerParams struct {
	fx.In

	CatalogueUC usecase.CatalogueUsecase
	Logger      *slog.Logger
}

// BookHandler holds dependencies for book-related handlers
type BookHandler struct {
	catalogueUC usecase.CatalogueUsecase
	logger      *slog.Logger
}

// NewBookHandler is the constructor for BookHandler
func NewBookHandler(params BookHandlerParams) *BookHandler {
	return &BookHandler{
		catalogueUC: params.CatalogueUC,
		logger:      params.Logger,
	}
}

// CreateBookRequest represents the request body for cataloguing a book
type CreateBookRequest struct {
	ISBN            string  `json:"isbn" validate:"required,len=13"`
	Title           string  `json:"title" validate:"required,max=255"`
	AuthorID        string  `json:"author_id" validate:"required,uuid"`
	CategoryID      *string `json:"category_id,omitempty" validate:"omitempty,uuid"`
	PublishedDate   string  `json:"published_date" validate:"omitempty,datetime=2006-01-02"`
	Language        string  `json:"language" validate:"required,oneof=FR EN ES DE IT OTHER"`
	Pages           *int    `json:"pages,omitempty" validate:"omitempty,gt=0"`
	Publisher       string  `json:"publisher" validate:"max=255"`
	Description     string  `json:"description"`
	CoverURL        string  `json:"cover_url" validate:"omitempty,url"`
	TotalCopies     *int    `json:"total_copies,omitempty" validate:"omitempty,gte=0"`
	AvailableCopies *int    `json:"available_copies,omitempty" validate:"omitempty,gte=0"`
}

// UpdateBookRequest represents the request body for a partial book update.
// Copy counters are deliberately absent; they move through checkout, return,
// and the copies endpoint only.
type UpdateBookRequest struct {
	Title         *string `json:"title,omitempty" validate:"omitempty,max=255"`
	CategoryID    *string `json:"category_id,omitempty" validate:"omitempty,uuid"`
	PublishedDate *string `json:"published_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Language      *string `json:"language,omitempty" validate:"omitempty,oneof=FR EN ES DE IT OTHER"`
	Pages         *int    `json:"pages,omitempty" validate:"omitempty,gt=0"`
	Publisher     *string `json:"publisher,omitempty" validate:"omitempty,max=255"`
	Description   *string `json:"description,omitempty"`
	CoverURL      *string `json:"cover_url,omitempty" validate:"omitempty,url"`
}

// SetTotalCopiesRequest represents the request body for the stocktaking edit
type SetTotalCopiesRequest struct {
	TotalCopies int `json:"total_copies" validate:"gte=0"`
}

// CreateBook handles cataloguing a new book
func (h *BookHandler) CreateBook(c echo.Context) error {
	var req CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid book input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	authorID, err := uuid.Parse(req.AuthorID)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid author ID")
	}

	input := &usecase.CreateBookInput{
		ISBN:            req.ISBN,
		Title:           req.Title,
		AuthorID:        authorID,
		Language:        entity.Language(req.Language),
		Pages:           req.Pages,
		Publisher:       req.Publisher,
		Description:     req.Description,
		CoverURL:        req.CoverURL,
		TotalCopies:     req.TotalCopies,
		AvailableCopies: req.AvailableCopies,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid category ID")
		}
		input.CategoryID = &categoryID
	}
	if req.PublishedDate != "" {
		publishedDate, err := time.Parse(dateLayout, req.PublishedDate)
		if err != nil {
			return response.BadRequest(c, "INVALID_DATE", "Invalid published date")
		}
		input.PublishedDate = publishedDate
	}

	book, err := h.catalogueUC.CreateBook(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, book, "Book created successfully")
}

// GetBook handles retrieving a single book, by ID or by ISBN via the isbn
// query parameter on the collection route.
func (h *BookHandler) GetBook(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid book ID")
	}

	book, err := h.catalogueUC.GetBook(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, book, "Book retrieved successfully")
}

// ListBooks handles retrieving books. An isbn query parameter narrows the
// lookup to the one matching book.
func (h *BookHandler) ListBooks(c echo.Context) error {
	if isbn := c.QueryParam("isbn"); isbn != "" {
		book, err := h.catalogueUC.GetBookByISBN(c.Request().Context(), isbn)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		return response.Success(c, http.StatusOK, book, "Book retrieved successfully")
	}

	books, err := h.catalogueUC.ListBooks(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, books, "Books retrieved successfully")
}

// UpdateBook handles a partial update of a book's descriptive fields
func (h *BookHandler) UpdateBook(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid book ID")
	}

	var req UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid book input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.UpdateBookInput{
		Title:       req.Title,
		Pages:       req.Pages,
		Publisher:   req.Publisher,
		Description: req.Description,
		CoverURL:    req.CoverURL,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid category ID")
		}
		input.CategoryID = &categoryID
	}
	if req.PublishedDate != nil {
		publishedDate, err := time.Parse(dateLayout, *req.PublishedDate)
		if err != nil {
			return response.BadRequest(c, "INVALID_DATE", "Invalid published date")
		}
		input.PublishedDate = &publishedDate
	}
	if req.Language != nil {
		language := entity.Language(*req.Language)
		input.Language = &language
	}

	book, err := h.catalogueUC.UpdateBook(c.Request().Context(), id, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, book, "Book updated successfully")
}

// SetTotalCopies handles the stocktaking edit of a book's copy count
func (h *BookHandler) SetTotalCopies(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid book ID")
	}

	var req SetTotalCopiesRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid copies input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	book, err := h.catalogueUC.SetTotalCopies(c.Request().Context(), id, req.TotalCopies)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, book, "Book copies updated successfully")
}

// DeleteBook handles book deletion
func (h *BookHandler) DeleteBook(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid book ID")
	}

	if err := h.catalogueUC.DeleteBook(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Book deleted successfully"}, "Book deleted successfully")
}

// GetBookAvailability handles retrieving the copy accounting of a book
func (h *BookHandler) GetBookAvailability(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid book ID")
	}

	availability, err := h.catalogueUC.GetBookAvailability(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, availability, "Book availability retrieved successfully")
}
