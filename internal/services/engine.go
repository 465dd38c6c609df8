package services

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"txn-analytics/internal/models"
)

var oneHundred = decimal.NewFromInt(100)

// money converts an exact decimal to its 2-decimal display value. This
// is the only place amounts leave decimal arithmetic.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

type periodAgg struct {
	count int
	sum   decimal.Decimal
}

func (p *periodAgg) average() decimal.Decimal {
	if p.count == 0 {
		return decimal.Zero
	}
	return p.sum.Div(decimal.NewFromInt(int64(p.count)))
}

// aggregates holds everything one pass over the filtered set produces.
// The count/amount asymmetry is deliberate: total counts cover every
// matching row while monetary totals cover successful rows only, and
// type breakdown amounts cover the full filtered set.
type aggregates struct {
	total        int
	successCount int
	successSum   decimal.Decimal
	successMin   decimal.Decimal
	successMax   decimal.Decimal
	failedCount  int
	typeCount    map[models.Type]int
	typeSum      map[models.Type]decimal.Decimal
	daily        map[time.Time]*periodAgg
	monthly      map[time.Time]*periodAgg
}

// aggregate runs the single pass. Daily and monthly buckets take only
// successful rows; everything they carry is a successful-only figure.
func aggregate(txs []models.Transaction) *aggregates {
	agg := &aggregates{
		successSum: decimal.Zero,
		typeCount:  make(map[models.Type]int),
		typeSum: map[models.Type]decimal.Decimal{
			models.TypePayment: decimal.Zero,
			models.TypeInvoice: decimal.Zero,
		},
		daily:   make(map[time.Time]*periodAgg),
		monthly: make(map[time.Time]*periodAgg),
	}

	for _, tx := range txs {
		agg.total++

		agg.typeCount[tx.Type]++
		agg.typeSum[tx.Type] = agg.typeSum[tx.Type].Add(tx.Amount)

		if tx.Status == models.StatusFailed {
			agg.failedCount++
			continue
		}

		if agg.successCount == 0 {
			agg.successMin = tx.Amount
			agg.successMax = tx.Amount
		} else {
			if tx.Amount.LessThan(agg.successMin) {
				agg.successMin = tx.Amount
			}
			if tx.Amount.GreaterThan(agg.successMax) {
				agg.successMax = tx.Amount
			}
		}
		agg.successCount++
		agg.successSum = agg.successSum.Add(tx.Amount)

		day := tx.Day()
		addPeriod(agg.daily, day, tx.Amount)

		month := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		addPeriod(agg.monthly, month, tx.Amount)
	}

	return agg
}

func addPeriod(groups map[time.Time]*periodAgg, key time.Time, amount decimal.Decimal) {
	p := groups[key]
	if p == nil {
		p = &periodAgg{sum: decimal.Zero}
		groups[key] = p
	}
	p.count++
	p.sum = p.sum.Add(amount)
}

func (a *aggregates) successRate() float64 {
	if a.total == 0 {
		return 0
	}
	rate := decimal.NewFromInt(int64(a.successCount)).
		Div(decimal.NewFromInt(int64(a.total))).
		Mul(oneHundred)
	return rate.Round(2).InexactFloat64()
}

func (a *aggregates) successAverage() decimal.Decimal {
	if a.successCount == 0 {
		return decimal.Zero
	}
	return a.successSum.Div(decimal.NewFromInt(int64(a.successCount)))
}

func (a *aggregates) typeBreakdown() models.TypeBreakdown {
	return models.TypeBreakdown{
		Payment: models.TypeStat{
			Count:  a.typeCount[models.TypePayment],
			Amount: money(a.typeSum[models.TypePayment]),
		},
		Invoice: models.TypeStat{
			Count:  a.typeCount[models.TypeInvoice],
			Amount: money(a.typeSum[models.TypeInvoice]),
		},
	}
}

// sortedPeriods returns the bucket keys in ascending order.
func sortedPeriods(groups map[time.Time]*periodAgg) []time.Time {
	keys := make([]time.Time, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b time.Time) int { return a.Compare(b) })
	return keys
}
