package handler

import (
	"log/slog"
	"net/http"
	"time"

	"biblio/internal/delivery/http/response"
	"biblio/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// dateLayout is the wire format of date-only fields.
const dateLayout = "2006-01-02"

// AuthorHandlerParams holds dependencies for AuthorHandler, injected by Fx.
type AuthorHandlerParams struct {
	fx.In

	CatalogueUC usecase.CatalogueUsecase
	Logger      *slog.Logger
}

// AuthorHandler holds dependencies for author-related handlers
type AuthorHandler struct {
	catalogueUC usecase.CatalogueUsecase
	logger      *slog.Logger
}

// NewAuthorHandler is the constructor for AuthorHandler
func NewAuthorHandler(params AuthorHandlerParams) *AuthorHandler {
	return &AuthorHandler{
		catalogueUC: params.CatalogueUC,
		logger:      params.Logger,
	}
}

// CreateAuthorRequest represents the request body for registering an author
type CreateAuthorRequest struct {
	FirstName   string  `json:"first_name" validate:"required,max=100"`
	LastName    string  `json:"last_name" validate:"required,max=100"`
	BirthDate   string  `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Nationality string  `json:"nationality" validate:"max=100"`
	Bio         string  `json:"bio"`
	DeathDate   *string `json:"death_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Website     string  `json:"website" validate:"omitempty,url"`
	PhotoURL    string  `json:"photo_url" validate:"omitempty,url"`
}

// UpdateAuthorRequest represents the request body for a partial author update
type UpdateAuthorRequest struct {
	Nationality *string `json:"nationality,omitempty" validate:"omitempty,max=100"`
	Bio         *string `json:"bio,omitempty"`
	DeathDate   *string `json:"death_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Website     *string `json:"website,omitempty" validate:"omitempty,url"`
	PhotoURL    *string `json:"photo_url,omitempty" validate:"omitempty,url"`
}

// CreateAuthor handles author registration
func (h *AuthorHandler) CreateAuthor(c echo.Context) error {
	var req CreateAuthorRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid author input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	birthDate, err := time.Parse(dateLayout, req.BirthDate)
	if err != nil {
		return response.BadRequest(c, "INVALID_DATE", "Invalid birth date")
	}

	input := &usecase.CreateAuthorInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		BirthDate:   birthDate,
		Nationality: req.Nationality,
		Bio:         req.Bio,
		Website:     req.Website,
		PhotoURL:    req.PhotoURL,
	}
	if req.DeathDate != nil {
		deathDate, err := time.Parse(dateLayout, *req.DeathDate)
		if err != nil {
			return response.BadRequest(c, "INVALID_DATE", "Invalid death date")
		}
		input.DeathDate = &deathDate
	}

	author, err := h.catalogueUC.CreateAuthor(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, author, "Author created successfully")
}

// GetAuthor handles retrieving a single author
func (h *AuthorHandler) GetAuthor(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid author ID")
	}

	author, err := h.catalogueUC.GetAuthor(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, author, "Author retrieved successfully")
}

// ListAuthors handles retrieving every author
func (h *AuthorHandler) ListAuthors(c echo.Context) error {
	authors, err := h.catalogueUC.ListAuthors(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, authors, "Authors retrieved successfully")
}

// UpdateAuthor handles a partial author update
func (h *AuthorHandler) UpdateAuthor(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid author ID")
	}

	var req UpdateAuthorRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid author input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.UpdateAuthorInput{
		Nationality: req.Nationality,
		Bio:         req.Bio,
		Website:     req.Website,
		PhotoURL:    req.PhotoURL,
	}
	if req.DeathDate != nil {
		deathDate, err := time.Parse(dateLayout, *req.DeathDate)
		if err != nil {
			return response.BadRequest(c, "INVALID_DATE", "Invalid death date")
		}
		input.DeathDate = &deathDate
	}

	author, err := h.catalogueUC.UpdateAuthor(c.Request().Context(), id, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, author, "Author updated successfully")
}

// DeleteAuthor handles author deletion
func (h *AuthorHandler) DeleteAuthor(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid author ID")
	}

	if err := h.catalogueUC.DeleteAuthor(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Author deleted successfully"}, "Author deleted successfully")
}
