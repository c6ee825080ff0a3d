// Package pagination splits list results into fixed-size, 1-based pages.
package pagination

import (
	"github.com/locallibrary/catalog/pkg/errcodes"
)

// Query is embedded in list query structs that support ?page=N.
type Query struct {
	Page int `query:"page" json:"page,omitempty" default:"1" validate:"min=1"`
}

// Page describes one page of a result set.
type Page struct {
	Number      int  `json:"number"`
	Size        int  `json:"size"`
	Total       int  `json:"total"`
	NumPages    int  `json:"num_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Offset returns the offset of the first row on the page.
func Offset(number, size int) int {
	if number < 1 {
		number = 1
	}
	return (number - 1) * size
}

// New describes page number of a result set with total rows. The first page
// always exists, even when there are no rows; any other page past the end is
// not found.
func New(number, size, total int) (*Page, error) {
	numPages := 1
	if total > 0 {
		numPages = (total + size - 1) / size
	}
	if number < 1 || number > numPages {
		return nil, errcodes.NotFound("Page")
	}

	return &Page{
		Number:      number,
		Size:        size,
		Total:       total,
		NumPages:    numPages,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}, nil
}
