package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"kakeibo/internal/core"
)

type summaryResponse struct {
	core.Summary
	SavingsRate decimal.NullDecimal `json:"savings_rate"`
}

type categoryReportResponse struct {
	Categories []core.CategoryTotal `json:"categories"`
}

type monthlyReportResponse struct {
	Months []core.MonthlyPoint `json:"months"`
}

// serveReport handles the shared shape of every report endpoint: resolve the
// range, serve from cache when possible, otherwise compute, memoize and
// respond.
func (s *Server) serveReport(w http.ResponseWriter, r *http.Request, name string, compute func(core.DateRange) (any, error)) {
	rng, err := parseRange(r.URL.Query(), time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cacheKey := name + "|" + rng.String()
	if body, ok := s.reportCache.Get(cacheKey); ok {
		writeRawJSON(w, http.StatusOK, body)
		return
	}

	report, err := compute(rng)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Failed to compute report",
			"error", err, "report", name, "range", rng.String())
		writeError(w, http.StatusInternalServerError, "failed to compute report")
		return
	}

	body, err := json.Marshal(report)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to marshal report", "error", err, "report", name)
		writeError(w, http.StatusInternalServerError, "failed to encode report")
		return
	}

	s.reportCache.Set(cacheKey, body)
	writeRawJSON(w, http.StatusOK, body)
}

func (s *Server) handleSummaryReport(w http.ResponseWriter, r *http.Request) {
	s.serveReport(w, r, "summary", func(rng core.DateRange) (any, error) {
		summary, err := s.ledger.Summary(r.Context(), rng)
		if err != nil {
			return nil, err
		}
		return summaryResponse{
			Summary:     summary,
			SavingsRate: summary.SavingsRate(),
		}, nil
	})
}

func (s *Server) handleCategoryReport(w http.ResponseWriter, r *http.Request) {
	s.serveReport(w, r, "categories", func(rng core.DateRange) (any, error) {
		rows, err := s.ledger.CategoryReport(r.Context(), rng)
		if err != nil {
			return nil, err
		}
		return categoryReportResponse{Categories: rows}, nil
	})
}

func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	s.serveReport(w, r, "monthly", func(rng core.DateRange) (any, error) {
		points, err := s.ledger.TrendReport(r.Context(), rng)
		if err != nil {
			return nil, err
		}
		return monthlyReportResponse{Months: points}, nil
	})
}

func (s *Server) handleStatisticsReport(w http.ResponseWriter, r *http.Request) {
	s.serveReport(w, r, "statistics", func(rng core.DateRange) (any, error) {
		return s.ledger.StatisticsReport(r.Context(), rng)
	})
}
