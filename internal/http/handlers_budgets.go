package http

import (
	"net/http"
	"strings"

	"budgetmaster/internal/analytics"
	"budgetmaster/internal/core"
	"budgetmaster/internal/ledger"
	"budgetmaster/internal/services"

	"github.com/go-chi/chi/v5"
)

type budgetsResponse struct {
	Budgets []analytics.BudgetStatus `json:"budgets"`
	Summary analytics.BudgetSummary  `json:"summary"`
}

func listBudgets(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statuses := svc.BudgetStatuses()
		budgets := make([]core.Budget, len(statuses))
		for i, st := range statuses {
			budgets[i] = st.Budget
		}
		writeJSON(w, http.StatusOK, budgetsResponse{
			Budgets: statuses,
			Summary: analytics.SummarizeBudgets(budgets),
		})
	}
}

func createBudget(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req budgetRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		b, err := req.toBudget()
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		stored, err := svc.AddBudget(r.Context(), b)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, analytics.BudgetProgress(stored))
	}
}

func updateBudget(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req budgetUpdateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		patch := ledger.BudgetPatch{Limit: req.Limit.ptr()}
		if req.Category != nil {
			c := sanitizeInput(*req.Category)
			patch.Category = &c
		}
		if req.Period != nil {
			p := core.BudgetPeriod(strings.ToLower(strings.TrimSpace(*req.Period)))
			patch.Period = &p
		}

		found, err := svc.UpdateBudget(r.Context(), chi.URLParam(r, "id"), patch)
		if !found {
			writeError(w, http.StatusNotFound, "budget not found")
			return
		}
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteBudget(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !svc.DeleteBudget(r.Context(), chi.URLParam(r, "id")) {
			writeError(w, http.StatusNotFound, "budget not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func reconcileBudgets(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"changed": svc.ReconcileBudgets(r.Context())})
	}
}
