package loans

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/auth"
	"github.com/locallibrary/catalog/pkg/instances"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/uptrace/bun"
)

// AllLoansURL is where librarians see every loan.
const AllLoansURL = "/loanlist/"

// RegisterRoutes registers the loan listings and the renewal form.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) {
	h := &handler{
		instanceService: instances.NewService(db),
		now:             time.Now,
	}

	librarian := []echo.MiddlewareFunc{
		authMiddleware.AuthenticateOptional,
		authMiddleware.RequirePermission(models.PermissionCanMarkReturned),
	}

	e.GET("/mybooks/", h.myLoans, authMiddleware.Authenticate)
	e.GET(AllLoansURL, h.allLoans, librarian...)
	e.GET("/book/:id/renew/", h.renewForm, librarian...)
	e.POST("/book/:id/renew/", h.renew, librarian...)
}
