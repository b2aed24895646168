package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"budgetmaster/internal/log"
	"budgetmaster/internal/middleware/ratelimit"
	"budgetmaster/internal/middleware/security"
	"budgetmaster/internal/middleware/trace"
	"budgetmaster/internal/services"

	"github.com/go-chi/chi/v5"
)

// Options configures the middleware stack.
type Options struct {
	RateLimitPerMinute int
	// TrustedProxies are CIDRs added to the private ranges whose
	// X-Forwarded-For and X-Real-IP headers are honoured.
	TrustedProxies []string
	Logger         *log.Logger
}

// Server is the JSON API in front of a FinanceService.
type Server struct {
	http.Server
	svc     *services.FinanceService
	limiter *ratelimit.Limiter
	tracer  *trace.Middleware
	guard   *security.Guard
	started time.Time

	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, svc *services.FinanceService, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}

	guard := security.NewGuard(logger, security.DefaultMaxBodyBytes)
	for _, cidr := range opts.TrustedProxies {
		if err := guard.AddTrustedProxy(cidr); err != nil {
			logger.Warn("Ignoring trusted proxy", log.FieldError, err)
		}
	}
	s := &Server{
		svc: svc,
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.RateLimitPerMinute,
			Logger:            logger,
		}),
		tracer:  trace.NewMiddleware(logger, guard.ClientIP),
		guard:   guard,
		started: time.Now(),
	}
	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.tracer.Middleware)
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)
	r.Use(s.guard.Middleware)

	r.Get("/health", handleHealth(s.started))
	r.Get("/metrics", handleMetrics(s))
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(s.limiter.Middleware(s.guard.ClientIP))

		r.Get("/dashboard", getDashboard(s.svc))
		r.Get("/reports", getReport(s.svc))
		r.Get("/trend", getTrend(s.svc))
		r.Get("/summary", getSummary(s.svc))
		r.Get("/categories", getCategories(s.svc))

		r.Get("/transactions", listTransactions(s.svc))
		r.Post("/transactions", createTransaction(s.svc))
		r.Delete("/transactions/{id}", deleteTransaction(s.svc))

		r.Get("/budgets", listBudgets(s.svc))
		r.Post("/budgets", createBudget(s.svc))
		r.Post("/budgets/reconcile", reconcileBudgets(s.svc))
		r.Put("/budgets/{id}", updateBudget(s.svc))
		r.Delete("/budgets/{id}", deleteBudget(s.svc))

		r.Get("/goals", listGoals(s.svc))
		r.Post("/goals", createGoal(s.svc))
		r.Put("/goals/{id}", updateGoal(s.svc))
		r.Delete("/goals/{id}", deleteGoal(s.svc))
		r.Post("/goals/{id}/funds", addFunds(s.svc))

		r.Get("/recurring", listRecurring(s.svc))
		r.Post("/recurring", createRecurring(s.svc))
		r.Delete("/recurring/{id}", deleteRecurring(s.svc))

		r.Get("/debts", listDebts(s.svc))
		r.Post("/debts", createDebt(s.svc))
		r.Put("/debts/{id}", updateDebt(s.svc))
		r.Delete("/debts/{id}", deleteDebt(s.svc))
		r.Post("/debts/{id}/payments", makePayment(s.svc))
	})

	return r
}

// Shutdown stops background goroutines and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}
