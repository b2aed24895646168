package http

import (
	"net/http"

	"budgetmaster/internal/analytics"
	"budgetmaster/internal/core"
	"budgetmaster/internal/services"

	"github.com/go-chi/chi/v5"
)

type recurringResponse struct {
	Recurring []analytics.RecurringStatus `json:"recurring"`
	Summary   analytics.RecurringSummary  `json:"summary"`
}

func listRecurring(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statuses := svc.RecurringStatuses()
		items := make([]core.RecurringTransaction, len(statuses))
		for i, st := range statuses {
			items[i] = st.Recurring
		}
		writeJSON(w, http.StatusOK, recurringResponse{
			Recurring: statuses,
			Summary:   analytics.SummarizeRecurring(items),
		})
	}
}

func createRecurring(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recurringRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		now := svc.Now()
		item, err := req.toRecurring(now)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		stored, err := svc.AddRecurring(r.Context(), item)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, analytics.ProjectRecurring(stored, now))
	}
}

func deleteRecurring(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !svc.DeleteRecurring(r.Context(), chi.URLParam(r, "id")) {
			writeError(w, http.StatusNotFound, "recurring transaction not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
