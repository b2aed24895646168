package http

import (
	"net/http"

	"budgetmaster/internal/analytics"
	"budgetmaster/internal/core"
	"budgetmaster/internal/ledger"
	"budgetmaster/internal/services"

	"github.com/go-chi/chi/v5"
)

type goalsResponse struct {
	Goals   []analytics.GoalStatus `json:"goals"`
	Summary analytics.GoalSummary  `json:"summary"`
}

func listGoals(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statuses := svc.GoalStatuses()
		goals := make([]core.Goal, len(statuses))
		for i, st := range statuses {
			goals[i] = st.Goal
		}
		writeJSON(w, http.StatusOK, goalsResponse{
			Goals:   statuses,
			Summary: analytics.SummarizeGoals(goals),
		})
	}
}

func createGoal(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req goalRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		g, err := req.toGoal()
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		stored, err := svc.AddGoal(r.Context(), g)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, analytics.ProjectGoal(stored, svc.Now()))
	}
}

func updateGoal(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req goalUpdateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		patch := ledger.GoalPatch{
			TargetAmount:  req.TargetAmount.ptr(),
			CurrentAmount: req.CurrentAmount.ptr(),
			Deadline:      req.Deadline.ptr(),
		}
		if req.Name != nil {
			n := sanitizeInput(*req.Name)
			patch.Name = &n
		}

		found, err := svc.UpdateGoal(r.Context(), chi.URLParam(r, "id"), patch)
		if !found {
			writeError(w, http.StatusNotFound, "goal not found")
			return
		}
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteGoal(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !svc.DeleteGoal(r.Context(), chi.URLParam(r, "id")) {
			writeError(w, http.StatusNotFound, "goal not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func addFunds(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req amountRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		id := chi.URLParam(r, "id")
		found, err := svc.AddFunds(r.Context(), id, req.Amount.Money)
		if !found {
			writeError(w, http.StatusNotFound, "goal not found")
			return
		}
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		for _, st := range svc.GoalStatuses() {
			if st.Goal.ID == id {
				writeJSON(w, http.StatusOK, st)
				return
			}
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
