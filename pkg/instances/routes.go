package instances

import (
	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/auth"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the book instance back office routes. Every route
// is librarian only.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	instanceService := NewService(db)

	h := &handler{
		instanceService: instanceService,
	}

	librarian := []echo.MiddlewareFunc{
		authMiddleware.AuthenticateOptional,
		authMiddleware.RequirePermission(models.PermissionCanMarkReturned),
	}

	e.GET("/instances/", h.list, librarian...)
	e.POST("/instances/", h.create, librarian...)
	e.GET("/instances/:id", h.retrieve, librarian...)
	e.POST("/instances/:id", h.update, librarian...)
	e.DELETE("/instances/:id", h.deleteInstance, librarian...)
	e.POST("/instances/:id/lend", h.lend, librarian...)
	e.POST("/instances/:id/return", h.markReturned, librarian...)

	return instanceService
}
