package loans

import (
	"strings"
	"time"

	"github.com/locallibrary/catalog/pkg/models"
	"github.com/pkg/errors"
)

const (
	// ProposedRenewalDays is how far ahead the renewal form proposes.
	ProposedRenewalDays = 21
	// MaxRenewalDays is the furthest a loan can be renewed to.
	MaxRenewalDays = 28
)

// Renewal form errors. The messages are shown to librarians as is.
var (
	ErrRenewalDateRequired = errors.New("This field is required.")
	ErrRenewalDateInvalid  = errors.New("Enter a valid date.")
	ErrRenewalInPast       = errors.New("Invalid date - renewal in past.")
	ErrRenewalTooFarAhead  = errors.New("Invalid date - renewal more than 4 weeks ahead.")
)

// renewalDateLayouts are the accepted input formats, tried in order.
var renewalDateLayouts = []string{
	models.DateLayout,
	"01/02/2006",
	"01/02/06",
}

// ProposedRenewalDate is the date the renewal form starts with.
func ProposedRenewalDate(today models.Date) models.Date {
	return today.AddDays(ProposedRenewalDays)
}

// RenewalWindow returns the first and last valid renewal dates, inclusive.
func RenewalWindow(today models.Date) (models.Date, models.Date) {
	return today, today.AddDays(MaxRenewalDays)
}

// ValidateRenewalDate checks that date falls inside the renewal window.
func ValidateRenewalDate(date, today models.Date) error {
	earliest, latest := RenewalWindow(today)
	if date.Before(earliest) {
		return ErrRenewalInPast
	}
	if date.After(latest) {
		return ErrRenewalTooFarAhead
	}
	return nil
}

// CleanRenewalDate parses raw form input and validates it against today.
func CleanRenewalDate(raw string, today models.Date) (models.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.Date{}, ErrRenewalDateRequired
	}

	for _, layout := range renewalDateLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		date := models.DateOf(t)
		if err := ValidateRenewalDate(date, today); err != nil {
			return models.Date{}, err
		}
		return date, nil
	}

	return models.Date{}, ErrRenewalDateInvalid
}
