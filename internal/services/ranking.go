package services

import (
	"slices"

	"txn-analytics/internal/models"
)

// topTransactions returns up to limit transactions ordered descending
// by amount. The sort is stable: equal amounts keep their relative
// order from the input, which is the ledger's file order.
func topTransactions(txs []models.Transaction, limit int) []models.TopTransaction {
	ranked := make([]models.Transaction, len(txs))
	copy(ranked, txs)

	slices.SortStableFunc(ranked, func(a, b models.Transaction) int {
		return b.Amount.Cmp(a.Amount)
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]models.TopTransaction, 0, len(ranked))
	for _, tx := range ranked {
		out = append(out, models.TopTransaction{
			TransactionID:   tx.ID,
			UserID:          tx.UserID,
			Amount:          money(tx.Amount),
			Status:          string(tx.Status),
			Type:            string(tx.Type),
			TransactionDate: tx.Day().Format(dateLayout),
		})
	}
	return out
}

// rankCountries sorts descending by the chosen metric and truncates to
// topN. Stable sort: ties keep the upstream ordering (countries sorted
// by name), making tie-breaks deterministic.
func rankCountries(stats []models.CountryStat, sortBy string, topN int) []models.CountryStat {
	ranked := make([]models.CountryStat, len(stats))
	copy(ranked, stats)

	var key func(models.CountryStat) float64
	switch sortBy {
	case "count":
		key = func(c models.CountryStat) float64 { return float64(c.TransactionCount) }
	case "avg":
		key = func(c models.CountryStat) float64 { return c.AverageAmount }
	default: // "total"
		key = func(c models.CountryStat) float64 { return c.TotalAmount }
	}

	slices.SortStableFunc(ranked, func(a, b models.CountryStat) int {
		ka, kb := key(a), key(b)
		switch {
		case ka > kb:
			return -1
		case ka < kb:
			return 1
		default:
			return 0
		}
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
