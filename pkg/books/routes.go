package books

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/auth"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the book list, detail, and edit views. Listing and
// detail are public; every edit view is librarian only.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	bookService := NewService(db)

	h := &handler{
		bookService: bookService,
	}

	e.GET("/books/", h.list)
	e.GET("/book/:id", h.retrieve)

	librarian := []echo.MiddlewareFunc{
		authMiddleware.AuthenticateOptional,
		authMiddleware.RequirePermission(models.PermissionCanMarkReturned),
	}

	e.GET("/book/create/", h.createForm, librarian...)
	e.POST("/book/create/", h.create, librarian...)
	e.GET("/book/:id/update/", h.updateForm, librarian...)
	e.POST("/book/:id/update/", h.update, librarian...)
	e.GET("/book/:id/delete/", h.deleteForm, librarian...)
	e.POST("/book/:id/delete/", h.deleteBook, librarian...)
	e.DELETE("/book/:id/delete/", h.deleteBook, librarian...)

	return bookService
}

// DetailURL is where a single book is shown.
func DetailURL(id int) string {
	return "/book/" + strconv.Itoa(id)
}

// ListURL is where all books are shown.
const ListURL = "/books/"
