package home

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB, secret string) {
	h := &handler{
		homeService: NewService(db),
		visits:      &visitCounter{secret: []byte(secret)},
	}

	e.GET("/", h.index)
}
