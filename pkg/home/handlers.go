package home

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type Response struct {
	*Counts
	NumVisits int `json:"num_visits"`
}

type handler struct {
	homeService *Service
	visits      *visitCounter
}

// index returns the catalog counts and how many times this session has
// visited before.
func (h *handler) index(c echo.Context) error {
	counts, err := h.homeService.Counts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	visits := h.visits.read(c)
	if err := h.visits.write(c, visits+1); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, Response{counts, visits}))
}
