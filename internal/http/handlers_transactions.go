package http

import (
	"net/http"

	"budgetmaster/internal/analytics"
	"budgetmaster/internal/services"

	"github.com/go-chi/chi/v5"
)

// transactionsResponse carries every known category alongside the filtered
// list so clients can build the category filter.
type transactionsResponse struct {
	analytics.FilterResult
	Categories []string `json:"categories"`
}

func listTransactions(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := analytics.TransactionFilter{
			Type:     q.Get("type"),
			Category: q.Get("category"),
			Search:   sanitizeInput(q.Get("q")),
		}
		switch filter.Type {
		case "", analytics.FilterAll, "income", "expense":
		default:
			writeError(w, http.StatusBadRequest, "invalid type filter")
			return
		}
		writeJSON(w, http.StatusOK, transactionsResponse{
			FilterResult: svc.Transactions(filter),
			Categories:   svc.Categories(),
		})
	}
}

func createTransaction(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req transactionRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		tx, err := req.toTransaction(svc.Now())
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		stored, err := svc.AddTransaction(r.Context(), tx)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, stored)
	}
}

func deleteTransaction(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !svc.DeleteTransaction(r.Context(), chi.URLParam(r, "id")) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
