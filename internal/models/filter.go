package models

import "time"

// Filter is the predicate set for one report request. The same value
// is applied to every aggregation in that request so all reported
// figures share an identical scope. Zero-valued Status/Type mean "all".
type Filter struct {
	Start  time.Time
	End    time.Time
	Status Status
	Type   Type
}

// Matches reports whether the transaction falls inside the filter
// scope. Date bounds are inclusive and compared at calendar-date
// precision.
func (f Filter) Matches(tx Transaction) bool {
	d := tx.Day()
	if d.Before(f.Start) || d.After(f.End) {
		return false
	}
	if f.Status != "" && tx.Status != f.Status {
		return false
	}
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	return true
}

// StatusLabel returns the filter echo value for responses.
func (f Filter) StatusLabel() string {
	if f.Status == "" {
		return "all"
	}
	return string(f.Status)
}

func (f Filter) TypeLabel() string {
	if f.Type == "" {
		return "all"
	}
	return string(f.Type)
}
