package loans

import (
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/locallibrary/catalog/pkg/pagination"
)

// PageSize is the number of loans on each page.
const PageSize = 10

type ListLoansQuery struct {
	pagination.Query
}

// RenewalPayload is the submitted renewal form. The date is validated by
// CleanRenewalDate so that errors can be shown on the form.
type RenewalPayload struct {
	RenewalDate string `json:"renewal_date" form:"renewal_date" mod:"trim"`
}

// RenewalForm is the renewal form as shown to the librarian.
type RenewalForm struct {
	RenewalDate string              `json:"renewal_date"`
	Errors      map[string][]string `json:"errors"`
}

type RenewalResponse struct {
	Form         RenewalForm          `json:"form"`
	BookInstance *models.BookInstance `json:"book_instance"`
}

// Loan is an instance on loan, flagged when it is past due.
type Loan struct {
	*models.BookInstance
	IsOverdue bool `json:"is_overdue"`
}

type LoansResponse struct {
	Loans []Loan           `json:"loans"`
	Page  *pagination.Page `json:"page"`
}
