package authors

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/auth"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the author list, detail, and edit views. Listing
// and detail are public; every edit view is librarian only.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	authorService := NewService(db)

	h := &handler{
		authorService: authorService,
	}

	e.GET("/authors/", h.list)
	e.GET("/authors/:id", h.retrieve)

	librarian := []echo.MiddlewareFunc{
		authMiddleware.AuthenticateOptional,
		authMiddleware.RequirePermission(models.PermissionCanMarkReturned),
	}

	e.GET("/author/create/", h.createForm, librarian...)
	e.POST("/author/create/", h.create, librarian...)
	e.GET("/author/:id/update/", h.updateForm, librarian...)
	e.POST("/author/:id/update/", h.update, librarian...)
	e.GET("/author/:id/delete/", h.deleteForm, librarian...)
	e.POST("/author/:id/delete/", h.deleteAuthor, librarian...)
	e.DELETE("/author/:id/delete/", h.deleteAuthor, librarian...)

	return authorService
}

// DetailURL is where a single author is shown.
func DetailURL(id int) string {
	return "/authors/" + strconv.Itoa(id)
}

// ListURL is where all authors are shown.
const ListURL = "/authors/"
