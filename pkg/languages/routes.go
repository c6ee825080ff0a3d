package languages

import (
	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/auth"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the language back office routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	languageService := NewService(db)

	h := &handler{
		languageService: languageService,
	}

	librarian := []echo.MiddlewareFunc{
		authMiddleware.AuthenticateOptional,
		authMiddleware.RequirePermission(models.PermissionCanMarkReturned),
	}

	e.GET("/languages/", h.list, librarian...)
	e.POST("/languages/", h.create, librarian...)
	e.GET("/languages/:id", h.retrieve, librarian...)
	e.POST("/languages/:id", h.update, librarian...)
	e.DELETE("/languages/:id", h.deleteLanguage, librarian...)

	return languageService
}
