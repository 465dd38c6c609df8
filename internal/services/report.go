package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"txn-analytics/internal/errors"
	"txn-analytics/internal/models"
)

const topTransactionsLimit = 10

// TransactionSource is the query capability the core needs from the
// transaction store.
type TransactionSource interface {
	Fetch(ctx context.Context, f models.Filter) ([]models.Transaction, error)
}

// CountrySource supplies the bulk user->country mapping. An error
// means the mapping is unavailable, which fails the country report.
type CountrySource interface {
	Snapshot(ctx context.Context) (map[int64]string, error)
}

// ReportRequest carries the raw, unvalidated parameters of a /report/
// call.
type ReportRequest struct {
	StartDate string
	EndDate   string
	Status    string
	Type      string

	IncludeAvg               bool
	IncludeMin               bool
	IncludeMax               bool
	IncludeDailyShift        bool
	IncludeMonthlyComparison bool
	IncludeTopTransactions   bool
}

// Reporter computes analytics reports. Each call is stateless: it
// builds the predicate set, fetches once, aggregates in a single pass,
// and assembles the payload.
type Reporter struct {
	source    TransactionSource
	countries CountrySource
	logger    *slog.Logger
	now       func() time.Time
}

func NewReporter(source TransactionSource, countries CountrySource, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		source:    source,
		countries: countries,
		logger:    logger,
		now:       time.Now,
	}
}

// Report builds the full transaction report. An empty result set is
// not an error: every metric is zero and requested sections are empty
// lists.
func (r *Reporter) Report(ctx context.Context, req ReportRequest) (*models.Report, error) {
	filter, err := BuildFilter(req.StartDate, req.EndDate, req.Status, req.Type, r.now())
	if err != nil {
		return nil, err
	}

	txs, err := r.source.Fetch(ctx, filter)
	if err != nil {
		return nil, errors.InternalWrap(err, "failed to read transactions")
	}

	agg := aggregate(txs)

	report := &models.Report{
		Period: models.Period{
			StartDate: filter.Start.Format(dateLayout),
			EndDate:   filter.End.Format(dateLayout),
		},
		Filters: models.ReportFilters{
			Status: filter.StatusLabel(),
			Type:   filter.TypeLabel(),
		},
		Metrics: models.Metrics{
			TotalTransactions:      agg.total,
			TotalAmount:            money(agg.successSum),
			SuccessfulTransactions: agg.successCount,
			FailedTransactions:     agg.failedCount,
			SuccessRate:            agg.successRate(),
			TypeBreakdown:          agg.typeBreakdown(),
		},
	}

	if req.IncludeAvg {
		v := money(agg.successAverage())
		report.Metrics.AverageAmount = &v
	}
	if req.IncludeMin {
		v := 0.0
		if agg.successCount > 0 {
			v = money(agg.successMin)
		}
		report.Metrics.MinimumAmount = &v
	}
	if req.IncludeMax {
		v := 0.0
		if agg.successCount > 0 {
			v = money(agg.successMax)
		}
		report.Metrics.MaximumAmount = &v
	}

	if req.IncludeDailyShift {
		daily := dailyBreakdown(agg)
		report.DailyBreakdown = &daily
	}
	if req.IncludeMonthlyComparison {
		monthly := monthlyComparison(agg)
		report.MonthlyComparison = &monthly
	}
	if req.IncludeTopTransactions {
		top := topTransactions(txs, topTransactionsLimit)
		report.TopTransactions = &top
	}

	r.logger.Debug("report generated",
		"matched", agg.total,
		"start", report.Period.StartDate,
		"end", report.Period.EndDate)

	return report, nil
}

// Summary builds the condensed last-N-days view. days must be in
// 1..365.
func (r *Reporter) Summary(ctx context.Context, days int) (*models.SummaryReport, error) {
	if days < 1 || days > 365 {
		return nil, errors.Unprocessable("days must be between 1 and 365")
	}

	now := r.now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -days)

	filter := models.Filter{Start: start, End: end}

	txs, err := r.source.Fetch(ctx, filter)
	if err != nil {
		return nil, errors.InternalWrap(err, "failed to read transactions")
	}

	agg := aggregate(txs)

	return &models.SummaryReport{
		Period: models.SummaryPeriod{
			StartDate: start.Format(dateLayout),
			EndDate:   end.Format(dateLayout),
			Days:      days,
		},
		Summary: models.SummaryMetrics{
			TotalTransactions: agg.total,
			TotalAmount:       money(agg.successSum),
			SuccessRate:       agg.successRate(),
			AverageAmount:     money(agg.successAverage()),
		},
	}, nil
}

func dailyBreakdown(agg *aggregates) []models.DailyBucket {
	days := sortedPeriods(agg.daily)
	changes := bucketChanges(agg.daily, days)

	buckets := make([]models.DailyBucket, 0, len(days))
	for i, day := range days {
		p := agg.daily[day]
		buckets = append(buckets, models.DailyBucket{
			Date:                day.Format(dateLayout),
			TransactionCount:    p.count,
			TotalAmount:         money(p.sum),
			AverageAmount:       money(p.average()),
			AmountChangePercent: changes[i].amount,
			CountChangePercent:  changes[i].count,
		})
	}
	return buckets
}

func monthlyComparison(agg *aggregates) []models.MonthlyBucket {
	months := sortedPeriods(agg.monthly)
	changes := bucketChanges(agg.monthly, months)

	buckets := make([]models.MonthlyBucket, 0, len(months))
	for i, month := range months {
		p := agg.monthly[month]
		buckets = append(buckets, models.MonthlyBucket{
			Period:              month.Format("January 2006"),
			Year:                month.Year(),
			Month:               int(month.Month()),
			TransactionCount:    p.count,
			TotalAmount:         money(p.sum),
			AverageAmount:       money(p.average()),
			AmountChangePercent: changes[i].amount,
			CountChangePercent:  changes[i].count,
		})
	}
	return buckets
}

func bucketChanges(groups map[time.Time]*periodAgg, ordered []time.Time) []periodChange {
	amounts := make([]decimal.Decimal, 0, len(ordered))
	counts := make([]int, 0, len(ordered))
	for _, key := range ordered {
		amounts = append(amounts, groups[key].sum)
		counts = append(counts, groups[key].count)
	}
	return percentChanges(amounts, counts)
}
