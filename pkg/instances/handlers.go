package instances

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

type handler struct {
	instanceService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListInstancesQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	instances, total, err := h.instanceService.ListInstancesWithTotal(ctx, ListInstancesOptions{
		Limit:      &params.Limit,
		Offset:     &params.Offset,
		Status:     params.Status,
		BookID:     params.BookID,
		BorrowerID: params.BorrowerID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"instances": instances,
		"total":     total,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) retrieve(c echo.Context) error {
	instance, err := h.retrieveFromParam(c)
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, instance))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateInstancePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	dueBack, err := ParseOptionalDate(params.DueBack)
	if err != nil {
		return err
	}

	instance := &models.BookInstance{
		BookID:     params.BookID,
		Imprint:    params.Imprint,
		DueBack:    dueBack,
		BorrowerID: params.BorrowerID,
		Status:     params.Status,
	}
	if err := h.instanceService.CreateInstance(ctx, instance); err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("book instance created", logger.Data{"instance_id": instance.ID.String(), "book_id": instance.BookID})

	instance, err = h.instanceService.RetrieveInstance(ctx, RetrieveInstanceOptions{ID: &instance.ID})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, instance))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	instance, err := h.retrieveFromParam(c)
	if err != nil {
		return err
	}

	params := UpdateInstancePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	opts := UpdateInstanceOptions{Columns: []string{}}
	if params.BookID != nil && *params.BookID != instance.BookID {
		instance.BookID = *params.BookID
		instance.Book = nil
		opts.Columns = append(opts.Columns, "book_id")
	}
	if params.Imprint != nil {
		instance.Imprint = *params.Imprint
		opts.Columns = append(opts.Columns, "imprint")
	}
	if params.DueBack != nil {
		dueBack, err := ParseOptionalDate(*params.DueBack)
		if err != nil {
			return err
		}
		instance.DueBack = dueBack
		opts.Columns = append(opts.Columns, "due_back")
	}
	if params.BorrowerID != nil {
		instance.BorrowerID = params.BorrowerID
		if *params.BorrowerID == 0 {
			instance.BorrowerID = nil
		}
		instance.Borrower = nil
		opts.Columns = append(opts.Columns, "borrower_id")
	}
	if params.Status != nil {
		instance.Status = *params.Status
		opts.Columns = append(opts.Columns, "status")
	}

	if err := h.instanceService.UpdateInstance(ctx, instance, opts); err != nil {
		return errors.WithStack(err)
	}

	return h.respondWithInstance(c, instance.ID)
}

func (h *handler) lend(c echo.Context) error {
	ctx := c.Request().Context()

	instance, err := h.retrieveFromParam(c)
	if err != nil {
		return err
	}

	params := LendPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	dueBack, err := ParseOptionalDate(params.DueBack)
	if err != nil {
		return err
	}

	if err := h.instanceService.Lend(ctx, instance, params.BorrowerID, *dueBack); err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("book instance lent", logger.Data{
		"instance_id": instance.ID.String(),
		"borrower_id": params.BorrowerID,
		"due_back":    dueBack.String(),
	})

	return h.respondWithInstance(c, instance.ID)
}

func (h *handler) markReturned(c echo.Context) error {
	ctx := c.Request().Context()

	instance, err := h.retrieveFromParam(c)
	if err != nil {
		return err
	}

	if err := h.instanceService.MarkReturned(ctx, instance); err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("book instance returned", logger.Data{"instance_id": instance.ID.String()})

	return h.respondWithInstance(c, instance.ID)
}

func (h *handler) deleteInstance(c echo.Context) error {
	ctx := c.Request().Context()

	instance, err := h.retrieveFromParam(c)
	if err != nil {
		return err
	}

	if err := h.instanceService.DeleteInstance(ctx, instance.ID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) respondWithInstance(c echo.Context, id uuid.UUID) error {
	instance, err := h.instanceService.RetrieveInstance(c.Request().Context(), RetrieveInstanceOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(c.JSON(http.StatusOK, instance))
}

func (h *handler) retrieveFromParam(c echo.Context) (*models.BookInstance, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, errcodes.NotFound("Book instance")
	}

	instance, err := h.instanceService.RetrieveInstance(c.Request().Context(), RetrieveInstanceOptions{ID: &id})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return instance, nil
}

// ParseOptionalDate parses a YYYY-MM-DD value. The empty string is no date.
func ParseOptionalDate(value string) (*models.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := models.ParseDate(value)
	if err != nil {
		return nil, errcodes.ValidationError(`"due_back" should be a valid date`)
	}
	return &d, nil
}
