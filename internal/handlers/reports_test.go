package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"txn-analytics/internal/models"
	"txn-analytics/internal/services"
	"txn-analytics/internal/store"
)

func testTransaction(id, userID int64, amount string, status models.Status, txType models.Type, date string) models.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.Transaction{
		ID:     id,
		UserID: userID,
		Amount: decimal.RequireFromString(amount),
		Status: status,
		Type:   txType,
		Date:   d,
	}
}

func newTestHandlers(byUser map[int64]string) *ReportHandlers {
	logger := slog.Default()

	ledger := store.NewLedger(logger)
	ledger.SetData([]models.Transaction{
		testTransaction(1, 1, "100.00", models.StatusSuccessful, models.TypePayment, "2024-01-05"),
		testTransaction(2, 1, "50.00", models.StatusFailed, models.TypePayment, "2024-01-05"),
		testTransaction(3, 2, "200.00", models.StatusSuccessful, models.TypeInvoice, "2024-01-06"),
	})

	countries := store.NewCountries("", logger)
	if byUser != nil {
		countries.SetData(byUser)
	}

	reporter := services.NewReporter(ledger, countries, logger)
	return NewReportHandlers(reporter, ledger, countries, logger)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	return body
}

func TestHandleReport_FullReport(t *testing.T) {
	h := newTestHandlers(nil)

	req := httptest.NewRequest(http.MethodGet,
		"/report/?start_date=2024-01-01&end_date=2024-01-31&include_avg=true&include_min=true&include_max=true&include_daily_shift=true&include_monthly_comparison=true&include_top_transactions=true", nil)
	w := httptest.NewRecorder()

	h.HandleReport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q", ct)
	}

	body := decodeBody(t, w)

	metrics, ok := body["metrics"].(map[string]any)
	if !ok {
		t.Fatal("metrics missing")
	}
	if got := metrics["total_transactions"].(float64); got != 3 {
		t.Errorf("total_transactions = %v, want 3", got)
	}
	if got := metrics["total_amount"].(float64); got != 300 {
		t.Errorf("total_amount = %v, want 300", got)
	}
	if got := metrics["success_rate"].(float64); got != 66.67 {
		t.Errorf("success_rate = %v, want 66.67", got)
	}

	breakdown := metrics["type_breakdown"].(map[string]any)
	for _, key := range []string{"payment", "invoice"} {
		if _, present := breakdown[key]; !present {
			t.Errorf("type_breakdown missing %q", key)
		}
	}

	for _, key := range []string{"average_amount", "minimum_amount", "maximum_amount"} {
		if _, present := metrics[key]; !present {
			t.Errorf("requested metric %q missing", key)
		}
	}

	daily := body["daily_breakdown"].([]any)
	if len(daily) != 2 {
		t.Fatalf("daily buckets = %d, want 2", len(daily))
	}
	first := daily[0].(map[string]any)
	if first["amount_change_percent"] != nil {
		t.Error("first bucket amount_change_percent should be null")
	}

	top := body["top_transactions"].([]any)
	if len(top) != 3 {
		t.Errorf("top transactions = %d, want 3", len(top))
	}
	if id := top[0].(map[string]any)["transaction_id"].(float64); id != 3 {
		t.Errorf("top transaction id = %v, want 3 (amount 200)", id)
	}
}

func TestHandleReport_OmitsUnrequestedSections(t *testing.T) {
	h := newTestHandlers(nil)

	req := httptest.NewRequest(http.MethodGet, "/report/?start_date=2024-01-01&end_date=2024-01-31", nil)
	w := httptest.NewRecorder()

	h.HandleReport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	body := decodeBody(t, w)
	for _, key := range []string{"daily_breakdown", "monthly_comparison", "top_transactions"} {
		if _, present := body[key]; present {
			t.Errorf("section %q should be omitted", key)
		}
	}
}

func TestHandleReport_ValidationErrors(t *testing.T) {
	h := newTestHandlers(nil)

	tests := []struct {
		name  string
		query string
	}{
		{"invalid date", "start_date=01-01-2024"},
		{"start after end", "start_date=2024-02-01&end_date=2024-01-01"},
		{"invalid status", "status=pending"},
		{"invalid type", "type=refund"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/report/?"+tt.query, nil)
			w := httptest.NewRecorder()

			h.HandleReport(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}

			body := decodeBody(t, w)
			if success, ok := body["success"].(bool); !ok || success {
				t.Error("error envelope should carry success=false")
			}
		})
	}
}

func TestHandleSummary(t *testing.T) {
	h := newTestHandlers(nil)

	req := httptest.NewRequest(http.MethodGet, "/report/summary?days=30", nil)
	w := httptest.NewRecorder()

	h.HandleSummary(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	period := body["period"].(map[string]any)
	if days := period["days"].(float64); days != 30 {
		t.Errorf("days echo = %v, want 30", days)
	}

	summary := body["summary"].(map[string]any)
	for _, key := range []string{"total_transactions", "total_amount", "success_rate", "average_amount"} {
		if _, present := summary[key]; !present {
			t.Errorf("summary missing %q", key)
		}
	}
}

func TestHandleSummary_InvalidDays(t *testing.T) {
	h := newTestHandlers(nil)

	for _, query := range []string{"days=0", "days=400", "days=abc"} {
		req := httptest.NewRequest(http.MethodGet, "/report/summary?"+query, nil)
		w := httptest.NewRecorder()

		h.HandleSummary(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("%s: status = %d, want %d", query, w.Code, http.StatusUnprocessableEntity)
		}
	}
}

func TestHandleCountryReport(t *testing.T) {
	h := newTestHandlers(map[int64]string{1: "Germany", 2: "France"})

	req := httptest.NewRequest(http.MethodGet,
		"/report/by-country?start_date=2024-01-01&end_date=2024-01-31&sort_by=total&top_n=5", nil)
	w := httptest.NewRecorder()

	h.HandleCountryReport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	countries := body["countries"].([]any)
	if len(countries) != 2 {
		t.Fatalf("countries = %d, want 2", len(countries))
	}

	// Default status filter is successful-only: France (200) > Germany (100).
	first := countries[0].(map[string]any)
	if first["country"].(string) != "France" {
		t.Errorf("first country = %v, want France", first["country"])
	}

	summary := body["summary"].(map[string]any)
	if tp := summary["top_performer"].(string); tp != "France" {
		t.Errorf("top_performer = %v", tp)
	}
	if _, present := summary["overall_stats"]; !present {
		t.Error("summary missing overall_stats")
	}
}

func TestHandleCountryReport_MappingUnavailable(t *testing.T) {
	h := newTestHandlers(nil)

	req := httptest.NewRequest(http.MethodGet, "/report/by-country?start_date=2024-01-01&end_date=2024-01-31", nil)
	w := httptest.NewRecorder()

	h.HandleCountryReport(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d when mapping is unavailable", w.Code, http.StatusInternalServerError)
	}
}

func TestHandleCountryReport_BadParams(t *testing.T) {
	h := newTestHandlers(map[int64]string{1: "Germany"})

	for _, query := range []string{"sort_by=amount", "top_n=0", "top_n=101", "top_n=x", "status=maybe"} {
		req := httptest.NewRequest(http.MethodGet, "/report/by-country?"+query, nil)
		w := httptest.NewRecorder()

		h.HandleCountryReport(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want %d", query, w.Code, http.StatusBadRequest)
		}
	}
}

func TestHandleHealth(t *testing.T) {
	h := newTestHandlers(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	h.HandleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["status"] != "healthy" {
		t.Errorf("status field = %v", body["status"])
	}
}

func TestHandleStats(t *testing.T) {
	h := newTestHandlers(map[int64]string{1: "Germany"})

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	w := httptest.NewRecorder()

	h.HandleStats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	body := decodeBody(t, w)
	if got := body["record_count"].(float64); got != 3 {
		t.Errorf("record_count = %v, want 3", got)
	}
	if got := body["mapped_users"].(float64); got != 1 {
		t.Errorf("mapped_users = %v, want 1", got)
	}
}
