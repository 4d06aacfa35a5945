package http

import (
	"log/slog"
	"net/http"

	"kakeibo/internal/core"
)

type categoryView struct {
	Name string               `json:"name"`
	Type core.TransactionType `json:"type"`
}

type listCategoriesResponse struct {
	Categories []categoryView `json:"categories"`
}

type healthResponse struct {
	Status       string `json:"status"`
	Transactions int64  `json:"transactions"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	var kind *core.TransactionType
	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		parsed, err := core.ParseTransactionType(typeStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		kind = &parsed
	}

	categories, err := s.ledger.Categories(r.Context(), kind)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list categories", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	views := make([]categoryView, len(categories))
	for i, c := range categories {
		views[i] = categoryView{Name: c.Name, Type: c.Type}
	}
	writeJSON(w, http.StatusOK, listCategoriesResponse{Categories: views})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.ledger.TransactionCount(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Health check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Transactions: count})
}
