package services

import (
	"fmt"
	"time"

	"txn-analytics/internal/errors"
	"txn-analytics/internal/models"
)

const dateLayout = "2006-01-02"

// BuildFilter normalizes raw query parameters into the predicate set
// shared by every aggregation in one report. Empty dates default to
// the first day of the current calendar month and today, evaluated at
// request time. Empty status/type are treated as "all".
func BuildFilter(startDate, endDate, status, txType string, now time.Time) (models.Filter, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if startDate != "" {
		parsed, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return models.Filter{}, errors.BadRequest(fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", startDate))
		}
		start = parsed
	}

	end := today
	if endDate != "" {
		parsed, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return models.Filter{}, errors.BadRequest(fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", endDate))
		}
		end = parsed
	}

	if start.After(end) {
		return models.Filter{}, errors.BadRequest("Start date cannot be after end date")
	}

	f := models.Filter{Start: start, End: end}

	switch status {
	case "", "all":
	case string(models.StatusSuccessful), string(models.StatusFailed):
		f.Status = models.Status(status)
	default:
		return models.Filter{}, errors.BadRequest(fmt.Sprintf("Invalid status: %s", status))
	}

	switch txType {
	case "", "all":
	case string(models.TypePayment), string(models.TypeInvoice):
		f.Type = models.Type(txType)
	default:
		return models.Filter{}, errors.BadRequest(fmt.Sprintf("Invalid type: %s", txType))
	}

	return f, nil
}
