// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"biblio/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthorHandler   *handler.AuthorHandler
	CategoryHandler *handler.CategoryHandler
	BookHandler     *handler.BookHandler
	LoanHandler     *handler.LoanHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	authorHandler   *handler.AuthorHandler
	categoryHandler *handler.CategoryHandler
	bookHandler     *handler.BookHandler
	loanHandler     *handler.LoanHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authorHandler:   params.AuthorHandler,
		categoryHandler: params.CategoryHandler,
		bookHandler:     params.BookHandler,
		loanHandler:     params.LoanHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	authorGroup := e.Group("/authors")
	{
		authorGroup.POST("", r.authorHandler.CreateAuthor)
		authorGroup.GET("", r.authorHandler.ListAuthors)
		authorGroup.GET("/:id", r.authorHandler.GetAuthor)
		authorGroup.PATCH("/:id", r.authorHandler.UpdateAuthor)
		authorGroup.DELETE("/:id", r.authorHandler.DeleteAuthor)
	}

	categoryGroup := e.Group("/categories")
	{
		categoryGroup.POST("", r.categoryHandler.CreateCategory)
		categoryGroup.GET("", r.categoryHandler.ListCategories)
		categoryGroup.GET("/:id", r.categoryHandler.GetCategory)
		categoryGroup.PATCH("/:id", r.categoryHandler.UpdateCategory)
		categoryGroup.DELETE("/:id", r.categoryHandler.DeleteCategory)
	}

	bookGroup := e.Group("/books")
	{
		bookGroup.POST("", r.bookHandler.CreateBook)
		bookGroup.GET("", r.bookHandler.ListBooks)
		bookGroup.GET("/:id", r.bookHandler.GetBook)
		bookGroup.PATCH("/:id", r.bookHandler.UpdateBook)
		bookGroup.PATCH("/:id/copies", r.bookHandler.SetTotalCopies)
		bookGroup.DELETE("/:id", r.bookHandler.DeleteBook)
		bookGroup.GET("/:id/availability", r.bookHandler.GetBookAvailability)
	}

	loanGroup := e.Group("/loans")
	{
		loanGroup.POST("", r.loanHandler.Checkout)
		loanGroup.GET("", r.loanHandler.ListLoans)
		loanGroup.GET("/:id", r.loanHandler.GetLoan)
		loanGroup.POST("/:id/return", r.loanHandler.Return)
		loanGroup.POST("/:id/extend", r.loanHandler.Extend)
		loanGroup.POST("/overdue/sweep", r.loanHandler.MarkOverdue)
	}
}
