package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Book instance statuses.
const (
	InstanceStatusMaintenance = "m"
	InstanceStatusOnLoan      = "o"
	InstanceStatusAvailable   = "a"
	InstanceStatusReserved    = "r"
)

var instanceStatusLabels = map[string]string{
	InstanceStatusMaintenance: "Maintenance",
	InstanceStatusOnLoan:      "On loan",
	InstanceStatusAvailable:   "Available",
	InstanceStatusReserved:    "Reserved",
}

// InstanceStatuses lists every valid status, in display order.
var InstanceStatuses = []string{
	InstanceStatusMaintenance,
	InstanceStatusOnLoan,
	InstanceStatusAvailable,
	InstanceStatusReserved,
}

// IsValidInstanceStatus reports whether status is one of the known statuses.
func IsValidInstanceStatus(status string) bool {
	_, ok := instanceStatusLabels[status]
	return ok
}

// InstanceStatusLabel returns the human readable label for a status.
func InstanceStatusLabel(status string) string {
	return instanceStatusLabels[status]
}

// BookInstance is a single lendable copy of a book.
type BookInstance struct {
	bun.BaseModel `bun:"table:book_instances,alias:bi"`

	ID         uuid.UUID `bun:",pk" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	BookID     int       `bun:",notnull" json:"book_id"`
	Book       *Book     `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
	Imprint    string    `bun:",notnull" json:"imprint"`
	DueBack    *Date     `json:"due_back"`
	BorrowerID *int      `json:"borrower_id"`
	Borrower   *User     `bun:"rel:belongs-to,join:borrower_id=id" json:"borrower,omitempty"`
	Status     string    `bun:",notnull" json:"status"`
}

// StatusLabel returns the human readable status.
func (bi *BookInstance) StatusLabel() string {
	return InstanceStatusLabel(bi.Status)
}

// IsOverdue reports whether the instance is on loan and due before today.
func (bi *BookInstance) IsOverdue(today Date) bool {
	return bi.Status == InstanceStatusOnLoan && bi.DueBack != nil && bi.DueBack.Before(today)
}
