package roles

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/pkg/errors"
)

type handler struct {
	roleService *Service
}

func (h *handler) list(c echo.Context) error {
	roles, err := h.roleService.List(c.Request().Context())
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, roles))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Role")
	}

	role, err := h.roleService.Retrieve(ctx, RetrieveOptions{ID: &id})
	if err != nil {
		return err
	}

	count, err := h.roleService.CountUsers(ctx, role.ID)
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, RoleWithUsers{role, count}))
}
