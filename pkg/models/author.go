package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID          int       `bun:",pk,nullzero" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	FirstName   string    `bun:",notnull" json:"first_name"`
	LastName    string    `bun:",notnull" json:"last_name"`
	DateOfBirth *Date     `json:"date_of_birth"`
	DateOfDeath *Date     `json:"date_of_death"`
	Books       []*Book   `bun:"rel:has-many,join:id=author_id" json:"books,omitempty"`
}

// String returns the author in "Last, First" form, which is how authors are
// sorted and displayed.
func (a *Author) String() string {
	return a.LastName + ", " + a.FirstName
}
