package genres

import (
	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/auth"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the genre back office routes. Every route is
// librarian only.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	genreService := NewService(db)

	h := &handler{
		genreService: genreService,
	}

	librarian := []echo.MiddlewareFunc{
		authMiddleware.AuthenticateOptional,
		authMiddleware.RequirePermission(models.PermissionCanMarkReturned),
	}

	e.GET("/genres/", h.list, librarian...)
	e.POST("/genres/", h.create, librarian...)
	e.GET("/genres/:id", h.retrieve, librarian...)
	e.GET("/genres/:id/books", h.books, librarian...)
	e.POST("/genres/:id", h.update, librarian...)
	e.DELETE("/genres/:id", h.deleteGenre, librarian...)

	return genreService
}
