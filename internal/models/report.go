package models

// Response payload types for the report endpoints. Amounts are float64
// here only because this is the serialization boundary; everything
// upstream computes in decimal.

type Period struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type ReportFilters struct {
	Status string `json:"status"`
	Type   string `json:"type"`
}

// TypeStat is the count/amount pair reported per transaction type over
// the full filtered set (not restricted to successful rows).
type TypeStat struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

type TypeBreakdown struct {
	Payment TypeStat `json:"payment"`
	Invoice TypeStat `json:"invoice"`
}

// Metrics is the always-present core of a report. TotalAmount and the
// optional avg/min/max are successful-only figures; TotalTransactions
// counts every matching row.
type Metrics struct {
	TotalTransactions      int           `json:"total_transactions"`
	TotalAmount            float64       `json:"total_amount"`
	SuccessfulTransactions int           `json:"successful_transactions"`
	FailedTransactions     int           `json:"failed_transactions"`
	SuccessRate            float64       `json:"success_rate"`
	TypeBreakdown          TypeBreakdown `json:"type_breakdown"`
	AverageAmount          *float64      `json:"average_amount,omitempty"`
	MinimumAmount          *float64      `json:"minimum_amount,omitempty"`
	MaximumAmount          *float64      `json:"maximum_amount,omitempty"`
}

// DailyBucket is one calendar day of successful-only aggregates. The
// change fields are nil (JSON null) when the previous bucket is absent
// or its base value is zero.
type DailyBucket struct {
	Date                string   `json:"date"`
	TransactionCount    int      `json:"transaction_count"`
	TotalAmount         float64  `json:"total_amount"`
	AverageAmount       float64  `json:"average_amount"`
	AmountChangePercent *float64 `json:"amount_change_percent"`
	CountChangePercent  *float64 `json:"count_change_percent"`
}

type MonthlyBucket struct {
	Period              string   `json:"period"`
	Year                int      `json:"year"`
	Month               int      `json:"month"`
	TransactionCount    int      `json:"transaction_count"`
	TotalAmount         float64  `json:"total_amount"`
	AverageAmount       float64  `json:"average_amount"`
	AmountChangePercent *float64 `json:"amount_change_percent"`
	CountChangePercent  *float64 `json:"count_change_percent"`
}

type TopTransaction struct {
	TransactionID   int64   `json:"transaction_id"`
	UserID          int64   `json:"user_id"`
	Amount          float64 `json:"amount"`
	Status          string  `json:"status"`
	Type            string  `json:"type"`
	TransactionDate string  `json:"transaction_date"`
}

// Report is the /report/ payload. Optional sections use slice pointers
// so that an unrequested section omits its key entirely while a
// requested-but-empty section still serializes as [].
type Report struct {
	Period            Period            `json:"period"`
	Filters           ReportFilters     `json:"filters"`
	Metrics           Metrics           `json:"metrics"`
	DailyBreakdown    *[]DailyBucket    `json:"daily_breakdown,omitempty"`
	MonthlyComparison *[]MonthlyBucket  `json:"monthly_comparison,omitempty"`
	TopTransactions   *[]TopTransaction `json:"top_transactions,omitempty"`
}

type SummaryPeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
}

type SummaryMetrics struct {
	TotalTransactions int     `json:"total_transactions"`
	TotalAmount       float64 `json:"total_amount"`
	SuccessRate       float64 `json:"success_rate"`
	AverageAmount     float64 `json:"average_amount"`
}

type SummaryReport struct {
	Period  SummaryPeriod  `json:"period"`
	Summary SummaryMetrics `json:"summary"`
}

type CountryFilters struct {
	Status string `json:"status"`
	Type   string `json:"type"`
	SortBy string `json:"sort_by"`
	TopN   int    `json:"top_n"`
}

type CountryStat struct {
	Country          string  `json:"country"`
	TransactionCount int     `json:"transaction_count"`
	TotalAmount      float64 `json:"total_amount"`
	AverageAmount    float64 `json:"average_amount"`
	UniqueUsers      int     `json:"unique_users"`
}

// OverallStats covers the whole country-resolvable subset, before the
// top-N cut. Transactions of unmapped users appear nowhere in it.
type OverallStats struct {
	TotalCountriesFound   int     `json:"total_countries_found"`
	TotalTransactionsAll  int     `json:"total_transactions_all"`
	TotalAmountAll        float64 `json:"total_amount_all"`
	AverageTransactionAll float64 `json:"average_transaction_all"`
}

type CountrySummary struct {
	TotalCountries    int          `json:"total_countries"`
	TotalTransactions int          `json:"total_transactions"`
	TotalAmount       float64      `json:"total_amount"`
	AveragePerCountry float64      `json:"average_per_country"`
	TopPerformer      *string      `json:"top_performer"`
	OverallStats      OverallStats `json:"overall_stats"`
}

type CountryReport struct {
	Period    Period         `json:"period"`
	Filters   CountryFilters `json:"filters"`
	Countries []CountryStat  `json:"countries"`
	Summary   CountrySummary `json:"summary"`
}
