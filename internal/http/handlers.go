package http

import (
	"net/http"
	"time"

	"budgetmaster/internal/core"
	"budgetmaster/internal/middleware/ratelimit"
	"budgetmaster/internal/middleware/security"
	"budgetmaster/internal/middleware/trace"
	"budgetmaster/internal/services"
)

func handleHealth(started time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(started).Round(time.Second).String(),
		})
	}
}

type metricsResponse struct {
	HTTP      trace.Metrics         `json:"http"`
	Security  security.GuardMetrics `json:"security"`
	RateLimit ratelimit.Metrics     `json:"rateLimit"`
}

func handleMetrics(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metricsResponse{
			HTTP:      s.tracer.GetMetrics(),
			Security:  s.guard.GetMetrics(),
			RateLimit: s.limiter.GetMetrics(),
		})
	}
}

func getDashboard(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Dashboard())
	}
}

func getReport(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		months, err := parseMonths(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, svc.Report(months))
	}
}

func getTrend(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		months, err := parseMonths(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, svc.Trend(months))
	}
}

type summaryResponse struct {
	Year   int         `json:"year"`
	Month  int         `json:"month"`
	Totals core.Totals `json:"totals"`
}

func getSummary(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month, err := parseMonth(r, svc.Now())
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, summaryResponse{
			Year:   month.Year(),
			Month:  int(month.Month()),
			Totals: svc.Summary(month),
		})
	}
}

func getCategories(svc *services.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month, err := parseMonth(r, svc.Now())
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, svc.CategoryBreakdown(month))
	}
}
