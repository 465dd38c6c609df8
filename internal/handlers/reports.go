package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"txn-analytics/internal/errors"
	"txn-analytics/internal/observability"
	"txn-analytics/internal/services"
	"txn-analytics/internal/store"
)

const defaultSummaryDays = 30

type ReportHandlers struct {
	reporter  *services.Reporter
	ledger    *store.Ledger
	countries *store.Countries
	logger    *slog.Logger
}

func NewReportHandlers(reporter *services.Reporter, ledger *store.Ledger, countries *store.Countries, logger *slog.Logger) *ReportHandlers {
	return &ReportHandlers{
		reporter:  reporter,
		ledger:    ledger,
		countries: countries,
		logger:    logger,
	}
}

func (h *ReportHandlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := services.ReportRequest{
		StartDate:                q.Get("start_date"),
		EndDate:                  q.Get("end_date"),
		Status:                   q.Get("status"),
		Type:                     q.Get("type"),
		IncludeAvg:               boolParam(q.Get("include_avg")),
		IncludeMin:               boolParam(q.Get("include_min")),
		IncludeMax:               boolParam(q.Get("include_max")),
		IncludeDailyShift:        boolParam(q.Get("include_daily_shift")),
		IncludeMonthlyComparison: boolParam(q.Get("include_monthly_comparison")),
		IncludeTopTransactions:   boolParam(q.Get("include_top_transactions")),
	}

	report, err := h.reporter.Report(r.Context(), req)
	if err != nil {
		errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
		return
	}

	errors.WriteJSON(w, report)
}

func (h *ReportHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	days := defaultSummaryDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			errors.WriteError(w, h.logger,
				errors.Unprocessable(fmt.Sprintf("Invalid days: %s", raw)),
				observability.GetRequestID(r.Context()))
			return
		}
		days = parsed
	}

	summary, err := h.reporter.Summary(r.Context(), days)
	if err != nil {
		errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
		return
	}

	errors.WriteJSON(w, summary)
}

func (h *ReportHandlers) HandleCountryReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := services.CountryRequest{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Status:    q.Get("status"),
		Type:      q.Get("type"),
		SortBy:    q.Get("sort_by"),
	}

	if raw := q.Get("top_n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			errors.WriteError(w, h.logger,
				errors.BadRequest(fmt.Sprintf("Invalid top_n: %s", raw)),
				observability.GetRequestID(r.Context()))
			return
		}
		req.TopN = parsed
	}

	report, err := h.reporter.CountryReport(r.Context(), req)
	if err != nil {
		errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
		return
	}

	errors.WriteJSON(w, report)
}

func (h *ReportHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	errors.WriteJSON(w, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	})
}

func (h *ReportHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats := h.ledger.Stats()
	stats["mapped_users"] = h.countries.Size()

	errors.WriteJSON(w, stats)
}

func boolParam(raw string) bool {
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}
