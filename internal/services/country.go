package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"txn-analytics/internal/errors"
	"txn-analytics/internal/models"
)

// CountryRequest carries the raw parameters of a /report/by-country
// call. Empty Status defaults to "successful" and empty SortBy to
// "total", matching the endpoint's documented defaults.
type CountryRequest struct {
	StartDate string
	EndDate   string
	Status    string
	Type      string
	SortBy    string
	TopN      int
}

type countryAgg struct {
	country string
	count   int
	sum     decimal.Decimal
	users   map[int64]struct{}
}

// CountryReport aggregates the filtered set by the owning user's
// country. Transactions of users absent from the mapping are dropped
// entirely: they appear in no country bucket and in none of the
// summary figures.
func (r *Reporter) CountryReport(ctx context.Context, req CountryRequest) (*models.CountryReport, error) {
	status := req.Status
	if status == "" {
		status = string(models.StatusSuccessful)
	}

	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = "total"
	}
	if sortBy != "count" && sortBy != "total" && sortBy != "avg" {
		return nil, errors.BadRequest(fmt.Sprintf("Invalid sort_by: %s", req.SortBy))
	}

	topN := req.TopN
	if topN == 0 {
		topN = 10
	}
	if topN < 1 || topN > 100 {
		return nil, errors.BadRequest(fmt.Sprintf("Invalid top_n: %d", req.TopN))
	}

	filter, err := BuildFilter(req.StartDate, req.EndDate, status, req.Type, r.now())
	if err != nil {
		return nil, err
	}

	byUser, err := r.countries.Snapshot(ctx)
	if err != nil {
		return nil, errors.DataUnavailableWrap(err, "Could not load user-country data")
	}

	txs, err := r.source.Fetch(ctx, filter)
	if err != nil {
		return nil, errors.InternalWrap(err, "failed to read transactions")
	}

	report := &models.CountryReport{
		Period: models.Period{
			StartDate: filter.Start.Format(dateLayout),
			EndDate:   filter.End.Format(dateLayout),
		},
		Filters: models.CountryFilters{
			Status: status,
			Type:   filter.TypeLabel(),
			SortBy: sortBy,
			TopN:   topN,
		},
		Countries: []models.CountryStat{},
	}

	groups := make(map[string]*countryAgg)
	resolvedCount := 0
	resolvedSum := decimal.Zero

	for _, tx := range txs {
		country, ok := byUser[tx.UserID]
		if !ok {
			continue
		}

		g := groups[country]
		if g == nil {
			g = &countryAgg{
				country: country,
				sum:     decimal.Zero,
				users:   make(map[int64]struct{}),
			}
			groups[country] = g
		}
		g.count++
		g.sum = g.sum.Add(tx.Amount)
		g.users[tx.UserID] = struct{}{}

		resolvedCount++
		resolvedSum = resolvedSum.Add(tx.Amount)
	}

	if len(groups) == 0 {
		return report, nil
	}

	stats := make([]models.CountryStat, 0, len(groups))
	for _, g := range groups {
		avg := g.sum.Div(decimal.NewFromInt(int64(g.count)))
		stats = append(stats, models.CountryStat{
			Country:          g.country,
			TransactionCount: g.count,
			TotalAmount:      money(g.sum),
			AverageAmount:    money(avg),
			UniqueUsers:      len(g.users),
		})
	}

	// Name order before ranking keeps equal-metric ties deterministic.
	slices.SortFunc(stats, func(a, b models.CountryStat) int {
		switch {
		case a.Country < b.Country:
			return -1
		case a.Country > b.Country:
			return 1
		default:
			return 0
		}
	})

	report.Countries = rankCountries(stats, sortBy, topN)
	report.Summary = countrySummary(report.Countries, len(groups), resolvedCount, resolvedSum)

	return report, nil
}

// countrySummary mirrors the report contract: the headline totals cover
// the returned top-N slice while overall_stats covers the full
// country-resolvable subset.
func countrySummary(top []models.CountryStat, countriesFound, resolvedCount int, resolvedSum decimal.Decimal) models.CountrySummary {
	summary := models.CountrySummary{
		TotalCountries: len(top),
		OverallStats: models.OverallStats{
			TotalCountriesFound:  countriesFound,
			TotalTransactionsAll: resolvedCount,
			TotalAmountAll:       money(resolvedSum),
		},
	}

	if resolvedCount > 0 {
		avg := resolvedSum.Div(decimal.NewFromInt(int64(resolvedCount)))
		summary.OverallStats.AverageTransactionAll = money(avg)
	}

	if len(top) == 0 {
		return summary
	}

	total := decimal.Zero
	for _, c := range top {
		summary.TotalTransactions += c.TransactionCount
		total = total.Add(decimal.NewFromFloat(c.TotalAmount))
	}

	summary.TotalAmount = money(total)
	summary.AveragePerCountry = money(total.Div(decimal.NewFromInt(int64(len(top)))))
	summary.TopPerformer = &top[0].Country

	return summary
}
