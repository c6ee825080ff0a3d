package loans

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/auth"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/instances"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/locallibrary/catalog/pkg/pagination"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/samber/lo"
)

type handler struct {
	instanceService *instances.Service
	now             func() time.Time
}

func (h *handler) today() models.Date {
	return models.DateOf(h.now())
}

// myLoans lists the instances the current user has on loan.
func (h *handler) myLoans(c echo.Context) error {
	user, ok := auth.GetUserFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}
	return h.listLoans(c, &user.ID)
}

// allLoans lists every instance on loan.
func (h *handler) allLoans(c echo.Context) error {
	return h.listLoans(c, nil)
}

func (h *handler) listLoans(c echo.Context, borrowerID *int) error {
	ctx := c.Request().Context()

	params := ListLoansQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	onLoan := models.InstanceStatusOnLoan
	limit := PageSize
	offset := pagination.Offset(params.Page, PageSize)
	loaned, total, err := h.instanceService.ListInstancesWithTotal(ctx, instances.ListInstancesOptions{
		Limit:      &limit,
		Offset:     &offset,
		Status:     &onLoan,
		BorrowerID: borrowerID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	page, err := pagination.New(params.Page, PageSize, total)
	if err != nil {
		return err
	}

	today := h.today()
	response := LoansResponse{
		Loans: lo.Map(loaned, func(instance *models.BookInstance, _ int) Loan {
			return Loan{instance, instance.IsOverdue(today)}
		}),
		Page: page,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) renewForm(c echo.Context) error {
	instance, err := h.retrieveFromParam(c)
	if err != nil {
		return err
	}

	response := RenewalResponse{
		Form: RenewalForm{
			RenewalDate: ProposedRenewalDate(h.today()).String(),
			Errors:      map[string][]string{},
		},
		BookInstance: instance,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) renew(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx)

	instance, err := h.retrieveFromParam(c)
	if err != nil {
		return err
	}

	c.Set("disallow_empty_body", false)
	params := RenewalPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	renewalDate, err := CleanRenewalDate(params.RenewalDate, h.today())
	if err != nil {
		log.Info("renewal rejected", logger.Data{"instance_id": instance.ID.String(), "reason": err.Error()})
		response := RenewalResponse{
			Form: RenewalForm{
				RenewalDate: params.RenewalDate,
				Errors:      map[string][]string{"renewal_date": {err.Error()}},
			},
			BookInstance: instance,
		}
		return errors.WithStack(c.JSON(http.StatusUnprocessableEntity, response))
	}

	instance.DueBack = &renewalDate
	err = h.instanceService.UpdateInstance(ctx, instance, instances.UpdateInstanceOptions{
		Columns: []string{"due_back"},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	log.Info("loan renewed", logger.Data{"instance_id": instance.ID.String(), "due_back": renewalDate.String()})

	return c.Redirect(http.StatusSeeOther, AllLoansURL)
}

func (h *handler) retrieveFromParam(c echo.Context) (*models.BookInstance, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, errcodes.NotFound("Book instance")
	}

	instance, err := h.instanceService.RetrieveInstance(c.Request().Context(), instances.RetrieveInstanceOptions{ID: &id})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return instance, nil
}
