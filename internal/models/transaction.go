package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the settlement outcome of a transaction.
type Status string

const (
	StatusSuccessful Status = "successful"
	StatusFailed     Status = "failed"
)

func (s Status) Valid() bool {
	return s == StatusSuccessful || s == StatusFailed
}

// Type is the business category of a transaction.
type Type string

const (
	TypePayment Type = "payment"
	TypeInvoice Type = "invoice"
)

func (t Type) Valid() bool {
	return t == TypePayment || t == TypeInvoice
}

// Transaction is a single ledger row. Date carries calendar-date
// precision only (midnight UTC); amounts are exact decimals until
// they reach the serialization boundary.
type Transaction struct {
	ID     int64
	UserID int64
	Amount decimal.Decimal
	Status Status
	Type   Type
	Date   time.Time
}

// Day returns the calendar date of the transaction, normalized to UTC.
func (tx Transaction) Day() time.Time {
	y, m, d := tx.Date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
