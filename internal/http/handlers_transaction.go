package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"kakeibo/internal/core"
	"kakeibo/internal/services"
)

// createTransactionRequest is the transaction-entry payload. Amount arrives
// as a string so decimal precision survives the wire.
type createTransactionRequest struct {
	Date        string `json:"date"`
	Type        string `json:"transaction_type"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type createTransactionResponse struct {
	ID int64 `json:"id"`
}

type transactionView struct {
	ID          int64                `json:"id"`
	Date        core.Date            `json:"date"`
	Category    string               `json:"category"`
	Description string               `json:"description"`
	Amount      decimal.Decimal      `json:"amount"`
	Type        core.TransactionType `json:"transaction_type"`
	CreatedAt   time.Time            `json:"created_at"`
}

type listTransactionsResponse struct {
	Transactions []transactionView `json:"transactions"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id, err := s.ledger.AddTransaction(r.Context(), services.TransactionInput{
		Date:        req.Date,
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Failed to create transaction", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create transaction")
		return
	}

	s.invalidateReports()
	writeJSON(w, http.StatusCreated, createTransactionResponse{ID: id})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRange(r.URL.Query(), time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var kind *core.TransactionType
	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		parsed, err := core.ParseTransactionType(typeStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		kind = &parsed
	}

	txs, err := s.ledger.Transactions(r.Context(), rng, kind)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list transactions", "error", err, "range", rng.String())
		writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	views := make([]transactionView, len(txs))
	for i, tx := range txs {
		views[i] = transactionView{
			ID:          tx.ID,
			Date:        tx.Date,
			Category:    tx.Category,
			Description: tx.Description,
			Amount:      tx.Amount,
			Type:        tx.Type,
			CreatedAt:   tx.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, listTransactionsResponse{Transactions: views})
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := s.ledger.DeleteTransaction(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete transaction", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}

	s.invalidateReports()
	w.WriteHeader(http.StatusNoContent)
}
