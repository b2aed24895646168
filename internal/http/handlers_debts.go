package http

import (
	"net/http"

	"budgetmaster/internal/analytics"
	"budgetmaster/internal/core"
	"budgetmaster/internal/ledger"
	"budgetmaster/internal/services"

	"github.com/go-chi/chi/v5"
)

type debtsResponse struct {
	Debts   []analytics.DebtStatus `json:"debts"`
	Summary analytics.DebtSummary  `json:"summary"`
}

func listDebts(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statuses := svc.DebtStatuses()
		debts := make([]core.Debt, len(statuses))
		for i, st := range statuses {
			debts[i] = st.Debt
		}
		writeJSON(w, http.StatusOK, debtsResponse{
			Debts:   statuses,
			Summary: analytics.SummarizeDebts(debts),
		})
	}
}

func createDebt(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req debtRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		d, err := req.toDebt()
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		stored, err := svc.AddDebt(r.Context(), d)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, analytics.ProjectDebt(stored, svc.Now()))
	}
}

func updateDebt(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req debtUpdateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		patch := ledger.DebtPatch{
			TotalAmount:     req.TotalAmount.ptr(),
			RemainingAmount: req.RemainingAmount.ptr(),
			InterestRate:    req.InterestRate,
			MinimumPayment:  req.MinimumPayment.ptr(),
			DueDate:         req.DueDate.ptr(),
		}
		if req.Name != nil {
			n := sanitizeInput(*req.Name)
			patch.Name = &n
		}

		found, err := svc.UpdateDebt(r.Context(), chi.URLParam(r, "id"), patch)
		if !found {
			writeError(w, http.StatusNotFound, "debt not found")
			return
		}
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteDebt(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !svc.DeleteDebt(r.Context(), chi.URLParam(r, "id")) {
			writeError(w, http.StatusNotFound, "debt not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func makePayment(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req amountRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		id := chi.URLParam(r, "id")
		found, err := svc.MakePayment(r.Context(), id, req.Amount.Money)
		if !found {
			writeError(w, http.StatusNotFound, "debt not found")
			return
		}
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		for _, st := range svc.DebtStatuses() {
			if st.Debt.ID == id {
				writeJSON(w, http.StatusOK, st)
				return
			}
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
