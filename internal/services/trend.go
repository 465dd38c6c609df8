package services

import "github.com/shopspring/decimal"

// periodChange holds the period-over-period deltas for one bucket. Nil
// means undefined: the bucket has no predecessor or the predecessor's
// base value was zero. Division by zero can never happen here.
type periodChange struct {
	amount *float64
	count  *float64
}

// percentChanges computes amount and count deltas independently for an
// ascending-ordered bucket sequence. The first bucket is always fully
// undefined.
func percentChanges(amounts []decimal.Decimal, counts []int) []periodChange {
	changes := make([]periodChange, len(amounts))

	for i := 1; i < len(amounts); i++ {
		changes[i].amount = percentChange(amounts[i], amounts[i-1])
		changes[i].count = percentChange(
			decimal.NewFromInt(int64(counts[i])),
			decimal.NewFromInt(int64(counts[i-1])),
		)
	}

	return changes
}

func percentChange(current, previous decimal.Decimal) *float64 {
	if previous.Sign() <= 0 {
		return nil
	}
	v := current.Sub(previous).Div(previous).Mul(oneHundred).Round(2).InexactFloat64()
	return &v
}
