package models

import (
	"time"

	"github.com/uptrace/bun"
)

// PermissionCanMarkReturned is the librarian permission. It gates every write
// to the catalog as well as the loan management views.
const PermissionCanMarkReturned = "can_mark_returned"

// Predefined role names.
const (
	RoleLibrarian = "librarian"
	RoleMember    = "member"
)

type Role struct {
	bun.BaseModel `bun:"table:roles,alias:r"`

	ID          int           `bun:",pk,nullzero" json:"id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Name        string        `bun:",nullzero" json:"name"`
	Permissions []*Permission `bun:"rel:has-many,join:id=role_id" json:"permissions,omitempty"`
}

type Permission struct {
	bun.BaseModel `bun:"table:permissions,alias:p"`

	ID       int    `bun:",pk,nullzero" json:"id"`
	RoleID   int    `json:"role_id"`
	Codename string `json:"codename"`
}

// HasPermission checks if the role grants the given permission.
func (r *Role) HasPermission(codename string) bool {
	for _, p := range r.Permissions {
		if p.Codename == codename {
			return true
		}
	}
	return false
}
