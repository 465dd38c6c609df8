package services

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPercentChanges_Basic(t *testing.T) {
	// day1 total=100, day2 total=150 -> day2 +50%, day1 undefined
	changes := percentChanges(
		[]decimal.Decimal{dec("100"), dec("150")},
		[]int{4, 6},
	)

	if changes[0].amount != nil || changes[0].count != nil {
		t.Error("first bucket must have undefined changes")
	}
	if changes[1].amount == nil || *changes[1].amount != 50.0 {
		t.Errorf("amount change = %v, want 50.0", changes[1].amount)
	}
	if changes[1].count == nil || *changes[1].count != 50.0 {
		t.Errorf("count change = %v, want 50.0", changes[1].count)
	}
}

func TestPercentChanges_ZeroBaseIsUndefined(t *testing.T) {
	changes := percentChanges(
		[]decimal.Decimal{dec("0"), dec("150")},
		[]int{0, 6},
	)

	if changes[1].amount != nil {
		t.Errorf("change over zero base = %v, want undefined", *changes[1].amount)
	}
	if changes[1].count != nil {
		t.Errorf("count change over zero base = %v, want undefined", *changes[1].count)
	}
}

func TestPercentChanges_AmountAndCountIndependent(t *testing.T) {
	// Amount base is zero while count base is positive: amount change
	// undefined, count change defined.
	changes := percentChanges(
		[]decimal.Decimal{dec("0"), dec("80")},
		[]int{2, 3},
	)

	if changes[1].amount != nil {
		t.Error("amount change should be undefined when previous amount is zero")
	}
	if changes[1].count == nil || *changes[1].count != 50.0 {
		t.Errorf("count change = %v, want 50.0", changes[1].count)
	}
}

func TestPercentChanges_NegativeDelta(t *testing.T) {
	changes := percentChanges(
		[]decimal.Decimal{dec("200"), dec("150")},
		[]int{10, 10},
	)

	if changes[1].amount == nil || *changes[1].amount != -25.0 {
		t.Errorf("amount change = %v, want -25.0", changes[1].amount)
	}
	if changes[1].count == nil || *changes[1].count != 0.0 {
		t.Errorf("count change = %v, want 0.0 (flat is defined, not undefined)", changes[1].count)
	}
}

func TestPercentChanges_Rounding(t *testing.T) {
	changes := percentChanges(
		[]decimal.Decimal{dec("3"), dec("4")},
		[]int{3, 4},
	)

	if changes[1].amount == nil || *changes[1].amount != 33.33 {
		t.Errorf("amount change = %v, want 33.33", changes[1].amount)
	}
}

func TestPercentChanges_EmptyAndSingle(t *testing.T) {
	if got := percentChanges(nil, nil); len(got) != 0 {
		t.Errorf("empty input should yield empty result, got %d", len(got))
	}

	single := percentChanges([]decimal.Decimal{dec("100")}, []int{1})
	if len(single) != 1 || single[0].amount != nil || single[0].count != nil {
		t.Error("single bucket must have undefined changes")
	}
}
