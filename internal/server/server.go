package server

import (
	"log/slog"
	"net/http"

	"txn-analytics/internal/handlers"
	"txn-analytics/internal/services"
	"txn-analytics/internal/store"
)

type Server struct {
	mux            *http.ServeMux
	logger         *slog.Logger
	reportHandlers *handlers.ReportHandlers
}

func NewServer(reporter *services.Reporter, ledger *store.Ledger, countries *store.Countries, logger *slog.Logger) *Server {
	s := &Server{
		mux:            http.NewServeMux(),
		logger:         logger,
		reportHandlers: handlers.NewReportHandlers(reporter, ledger, countries, logger),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /health", s.reportHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.reportHandlers.HandleStats)

	// Report API
	s.mux.HandleFunc("GET /report/{$}", s.reportHandlers.HandleReport)
	s.mux.HandleFunc("GET /report/summary", s.reportHandlers.HandleSummary)
	s.mux.HandleFunc("GET /report/by-country", s.reportHandlers.HandleCountryReport)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
