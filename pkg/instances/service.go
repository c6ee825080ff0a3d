package instances

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveInstanceOptions struct {
	ID *uuid.UUID
}

type ListInstancesOptions struct {
	Limit      *int
	Offset     *int
	Status     *string
	BookID     *int
	BorrowerID *int
	// DueBefore matches instances whose due_back is strictly before the date.
	DueBefore *models.Date

	includeTotal bool
}

type CountInstancesOptions struct {
	Status *string
}

type UpdateInstanceOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// ValidateInstanceState checks that the status is known and consistent with
// the loan fields. An instance on loan needs a due date and a borrower; an
// available instance has no borrower.
func ValidateInstanceState(instance *models.BookInstance) error {
	if !models.IsValidInstanceStatus(instance.Status) {
		return errcodes.ValidationError("Invalid status " + instance.Status)
	}
	switch instance.Status {
	case models.InstanceStatusOnLoan:
		if instance.DueBack == nil {
			return errcodes.ValidationError("An instance on loan needs a due back date")
		}
		if instance.BorrowerID == nil {
			return errcodes.ValidationError("An instance on loan needs a borrower")
		}
	case models.InstanceStatusAvailable:
		if instance.BorrowerID != nil {
			return errcodes.ValidationError("An available instance cannot have a borrower")
		}
	}
	return nil
}

// CreateInstance inserts a new instance with a generated ID. The status
// defaults to maintenance.
func (svc *Service) CreateInstance(ctx context.Context, instance *models.BookInstance) error {
	if instance.ID == uuid.Nil {
		instance.ID = uuid.New()
	}
	if instance.Status == "" {
		instance.Status = models.InstanceStatusMaintenance
	}
	if err := ValidateInstanceState(instance); err != nil {
		return err
	}

	now := time.Now()
	if instance.CreatedAt.IsZero() {
		instance.CreatedAt = now
	}
	instance.UpdatedAt = instance.CreatedAt

	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := validateReferences(ctx, tx, instance); err != nil {
			return err
		}

		_, err := tx.
			NewInsert().
			Model(instance).
			Exec(ctx)
		return errors.WithStack(err)
	})
}

// RetrieveInstance loads an instance with its book, the book's author, and
// the borrower.
func (svc *Service) RetrieveInstance(ctx context.Context, opts RetrieveInstanceOptions) (*models.BookInstance, error) {
	instance := &models.BookInstance{}

	q := svc.db.
		NewSelect().
		Model(instance).
		Relation("Book").
		Relation("Book.Author").
		Relation("Borrower")

	if opts.ID != nil {
		q = q.Where("bi.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book instance")
		}
		return nil, errors.WithStack(err)
	}

	return instance, nil
}

func (svc *Service) ListInstances(ctx context.Context, opts ListInstancesOptions) ([]*models.BookInstance, error) {
	i, _, err := svc.listInstancesWithTotal(ctx, opts)
	return i, errors.WithStack(err)
}

func (svc *Service) ListInstancesWithTotal(ctx context.Context, opts ListInstancesOptions) ([]*models.BookInstance, int, error) {
	opts.includeTotal = true
	return svc.listInstancesWithTotal(ctx, opts)
}

// listInstancesWithTotal orders by due date, earliest first. Instances with no
// due date sort first.
func (svc *Service) listInstancesWithTotal(ctx context.Context, opts ListInstancesOptions) ([]*models.BookInstance, int, error) {
	instances := []*models.BookInstance{}
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&instances).
		Relation("Book").
		Relation("Borrower").
		Order("bi.due_back ASC", "bi.created_at ASC")

	if opts.Status != nil {
		q = q.Where("bi.status = ?", *opts.Status)
	}
	if opts.BookID != nil {
		q = q.Where("bi.book_id = ?", *opts.BookID)
	}
	if opts.BorrowerID != nil {
		q = q.Where("bi.borrower_id = ?", *opts.BorrowerID)
	}
	if opts.DueBefore != nil {
		q = q.Where("bi.due_back < ?", *opts.DueBefore)
	}
	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return instances, total, nil
}

func (svc *Service) CountInstances(ctx context.Context, opts CountInstancesOptions) (int, error) {
	q := svc.db.NewSelect().Model((*models.BookInstance)(nil))
	if opts.Status != nil {
		q = q.Where("bi.status = ?", *opts.Status)
	}
	count, err := q.Count(ctx)
	return count, errors.WithStack(err)
}

// UpdateInstance writes the given columns after checking the resulting state.
func (svc *Service) UpdateInstance(ctx context.Context, instance *models.BookInstance, opts UpdateInstanceOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}
	if err := ValidateInstanceState(instance); err != nil {
		return err
	}

	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := validateReferences(ctx, tx, instance); err != nil {
			return err
		}

		instance.UpdatedAt = time.Now()
		columns := append(opts.Columns, "updated_at")

		_, err := tx.
			NewUpdate().
			Model(instance).
			Column(columns...).
			WherePK().
			Exec(ctx)
		return errors.WithStack(err)
	})
}

// MarkReturned makes an instance available again and clears its loan.
func (svc *Service) MarkReturned(ctx context.Context, instance *models.BookInstance) error {
	instance.Status = models.InstanceStatusAvailable
	instance.BorrowerID = nil
	instance.Borrower = nil
	instance.DueBack = nil
	return svc.UpdateInstance(ctx, instance, UpdateInstanceOptions{
		Columns: []string{"status", "borrower_id", "due_back"},
	})
}

// Lend puts an instance on loan to borrowerID until dueBack.
func (svc *Service) Lend(ctx context.Context, instance *models.BookInstance, borrowerID int, dueBack models.Date) error {
	if instance.Status == models.InstanceStatusOnLoan {
		return errcodes.Conflict("Book instance is already on loan.")
	}
	instance.Status = models.InstanceStatusOnLoan
	instance.BorrowerID = &borrowerID
	instance.Borrower = nil
	instance.DueBack = &dueBack
	return svc.UpdateInstance(ctx, instance, UpdateInstanceOptions{
		Columns: []string{"status", "borrower_id", "due_back"},
	})
}

func (svc *Service) DeleteInstance(ctx context.Context, id uuid.UUID) error {
	_, err := svc.db.NewDelete().
		Model((*models.BookInstance)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return errors.WithStack(err)
}

func validateReferences(ctx context.Context, tx bun.Tx, instance *models.BookInstance) error {
	exists, err := tx.NewSelect().
		Model((*models.Book)(nil)).
		Where("id = ?", instance.BookID).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		return errcodes.ValidationError("Book does not exist")
	}

	if instance.BorrowerID != nil {
		exists, err := tx.NewSelect().
			Model((*models.User)(nil)).
			Where("id = ?", *instance.BorrowerID).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if !exists {
			return errcodes.ValidationError("Borrower does not exist")
		}
	}
	return nil
}
