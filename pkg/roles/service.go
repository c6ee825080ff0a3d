package roles

import (
	"context"
	"database/sql"

	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// RoleWithUsers is a role together with how many active users hold it.
type RoleWithUsers struct {
	*models.Role
	UserCount int `json:"user_count"`
}

// Service handles role operations. Roles are seeded by migrations and are
// read only at runtime.
type Service struct {
	db *bun.DB
}

// NewService creates a new roles service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

type RetrieveOptions struct {
	ID   *int
	Name *string
}

// Retrieve gets a role by ID or name, with its permissions.
func (s *Service) Retrieve(ctx context.Context, opts RetrieveOptions) (*models.Role, error) {
	role := &models.Role{}
	q := s.db.NewSelect().
		Model(role).
		Relation("Permissions")

	if opts.ID != nil {
		q = q.Where("r.id = ?", *opts.ID)
	}
	if opts.Name != nil {
		q = q.Where("r.name = ?", *opts.Name)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Role")
		}
		return nil, errors.WithStack(err)
	}

	return role, nil
}

// List returns every role ordered by name.
func (s *Service) List(ctx context.Context) ([]*RoleWithUsers, error) {
	roles := []*models.Role{}
	err := s.db.NewSelect().
		Model(&roles).
		Relation("Permissions").
		Order("r.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	result := make([]*RoleWithUsers, 0, len(roles))
	for _, role := range roles {
		count, err := s.CountUsers(ctx, role.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &RoleWithUsers{role, count})
	}

	return result, nil
}

// CountUsers counts the active users holding the role.
func (s *Service) CountUsers(ctx context.Context, roleID int) (int, error) {
	count, err := s.db.NewSelect().
		Model((*models.User)(nil)).
		Where("role_id = ?", roleID).
		Where("is_active = ?", true).
		Count(ctx)
	return count, errors.WithStack(err)
}
