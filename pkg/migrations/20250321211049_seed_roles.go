package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`INSERT INTO roles (name) VALUES ('librarian'), ('member')`)
		if err != nil {
			return errors.WithStack(err)
		}

		var librarianRoleID int
		err = db.QueryRow(`SELECT id FROM roles WHERE name = 'librarian'`).Scan(&librarianRoleID)
		if err != nil {
			return errors.WithStack(err)
		}

		// Members get no permissions: they can browse the catalog and see their
		// own loans, which only needs a session.
		_, err = db.Exec(`INSERT INTO permissions (role_id, codename) VALUES (?, 'can_mark_returned')`, librarianRoleID)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`DELETE FROM permissions WHERE role_id IN (SELECT id FROM roles WHERE name IN ('librarian', 'member'))`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`DELETE FROM roles WHERE name IN ('librarian', 'member')`)
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
