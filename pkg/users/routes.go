package users

import (
	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/auth"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers all user routes. Every route is librarian only.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	userService := NewService(db)

	h := &handler{
		userService: userService,
	}

	librarian := []echo.MiddlewareFunc{
		authMiddleware.AuthenticateOptional,
		authMiddleware.RequirePermission(models.PermissionCanMarkReturned),
	}

	e.GET("/users/", h.list, librarian...)
	e.GET("/users/:id", h.retrieve, librarian...)
	e.POST("/users/", h.create, librarian...)
	e.POST("/users/:id", h.update, librarian...)
	e.DELETE("/users/:id", h.deactivate, librarian...)
	e.POST("/users/:id/reset-password", h.resetPassword, librarian...)

	return userService
}
