package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"budgetmaster/internal/analytics"
	"budgetmaster/internal/core"
	"budgetmaster/internal/ledger"
	"budgetmaster/internal/log"
	"budgetmaster/internal/storage"

	"golang.org/x/sync/errgroup"
)

// Publisher announces a saved collection. *amqp.Client satisfies it.
type Publisher interface {
	PublishCollectionChanged(ctx context.Context, collection string, payload []byte, savedAt time.Time) error
}

// eventQueueSize bounds the change events waiting for the publisher. A full
// queue holds the next mutation until the publisher catches up.
const eventQueueSize = 128

type changeEvent struct {
	ctx        context.Context
	collection string
	payload    []byte
	savedAt    time.Time
}

// FinanceService owns the ledger for a host process. Mutations are
// serialized; each one saves the collections it touched and publishes a
// change event. Save and publish failures are logged, never returned.
type FinanceService struct {
	mu     sync.Mutex
	ledger *ledger.Ledger

	store       storage.CollectionStore
	publisher   Publisher
	logger      *log.Logger
	structured  *log.StructuredLogger
	now         func() time.Time
	trendMonths int
	readOnly    bool

	events    chan changeEvent
	published chan struct{}
	closed    bool
}

// NewFinanceService returns a service with an empty ledger; call Load before
// serving. publisher may be nil, in which case no change events are sent.
// Change events are delivered by a single goroutine in save order.
func NewFinanceService(store storage.CollectionStore, publisher Publisher, logger *log.Logger) *FinanceService {
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentFinance)
	s := &FinanceService{
		ledger:      ledger.New(),
		store:       store,
		publisher:   publisher,
		logger:      logger,
		structured:  log.NewStructuredLogger(logger),
		now:         time.Now,
		trendMonths: analytics.DefaultTrendMonths,
	}
	if publisher != nil {
		s.events = make(chan changeEvent, eventQueueSize)
		s.published = make(chan struct{})
		go s.runPublisher()
	}
	return s
}

// SetClock replaces the time source used by queries and seeding.
func (s *FinanceService) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SetReadOnly stops the service from writing to its store. Seeds still
// apply in memory, so reports over an empty store show the seed data.
func (s *FinanceService) SetReadOnly(readOnly bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readOnly = readOnly
}

// SetTrendMonths sets the default trend length used when callers pass 0.
func (s *FinanceService) SetTrendMonths(n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trendMonths = n
}

// Load reads all collections in parallel and replaces the ledger. Absent
// transactions, budgets and goals are seeded and saved right away.
func (s *FinanceService) Load(ctx context.Context) error {
	var (
		snap                         analytics.Snapshot
		hasTxs, hasBudgets, hasGoals bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Transactions, hasTxs, err = storage.LoadCollection[core.Transaction](gctx, s.store, storage.Transactions)
		return err
	})
	g.Go(func() (err error) {
		snap.Budgets, hasBudgets, err = storage.LoadCollection[core.Budget](gctx, s.store, storage.Budgets)
		return err
	})
	g.Go(func() (err error) {
		snap.Goals, hasGoals, err = storage.LoadCollection[core.Goal](gctx, s.store, storage.Goals)
		return err
	})
	g.Go(func() (err error) {
		snap.Recurring, _, err = storage.LoadCollection[core.RecurringTransaction](gctx, s.store, storage.RecurringTransactions)
		return err
	})
	g.Go(func() (err error) {
		snap.Debts, _, err = storage.LoadCollection[core.Debt](gctx, s.store, storage.Debts)
		return err
	})
	if err := g.Wait(); err != nil {
		s.structured.LogError(ctx, "Failed to load ledger", err, log.ComponentStorage, log.OpLoad, nil)
		return fmt.Errorf("load ledger: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var seeded []string
	if !hasTxs {
		snap.Transactions = ledger.SeedTransactions(s.now())
		seeded = append(seeded, storage.Transactions)
	}
	if !hasBudgets {
		snap.Budgets = ledger.SeedBudgets()
		seeded = append(seeded, storage.Budgets)
	}
	if !hasGoals {
		snap.Goals = ledger.SeedGoals()
		seeded = append(seeded, storage.Goals)
	}

	s.ledger = ledger.FromSnapshot(snap)
	if len(seeded) > 0 {
		s.logger.InfoContext(ctx, "Seeding absent collections",
			log.FieldOperation, log.OpSeed,
			"collections", seeded)
		s.persist(ctx, seeded...)
	}

	s.logger.InfoContext(ctx, "Ledger loaded",
		log.FieldOperation, log.OpLoad,
		"transactions", len(snap.Transactions),
		"budgets", len(snap.Budgets),
		"goals", len(snap.Goals),
		"recurring", len(snap.Recurring),
		"debts", len(snap.Debts))
	return nil
}

// Close stops accepting change events and waits until the queued ones have
// been handed to the publisher. It is safe to call more than once.
func (s *FinanceService) Close() error {
	s.mu.Lock()
	if s.events != nil && !s.closed {
		close(s.events)
	}
	s.closed = true
	s.mu.Unlock()

	if s.published != nil {
		<-s.published
	}
	return nil
}

// persist saves the named collections and queues a change event for each
// one that was stored. Callers hold mu.
func (s *FinanceService) persist(ctx context.Context, names ...string) {
	if s.readOnly {
		s.logger.DebugContext(ctx, "Read-only service, skipping save", "collections", names)
		return
	}
	for _, name := range names {
		payload, err := s.save(ctx, name)
		if err != nil {
			s.structured.LogError(ctx, "Failed to save collection", err, log.ComponentStorage, log.OpSave,
				log.NewFields().WithCollection(name, -1))
			continue
		}
		s.enqueue(ctx, name, payload)
	}
}

func (s *FinanceService) save(ctx context.Context, name string) ([]byte, error) {
	switch name {
	case storage.Transactions:
		return storage.SaveCollection(ctx, s.store, name, s.ledger.Transactions())
	case storage.Budgets:
		return storage.SaveCollection(ctx, s.store, name, s.ledger.Budgets())
	case storage.Goals:
		return storage.SaveCollection(ctx, s.store, name, s.ledger.Goals())
	case storage.RecurringTransactions:
		return storage.SaveCollection(ctx, s.store, name, s.ledger.Recurring())
	case storage.Debts:
		return storage.SaveCollection(ctx, s.store, name, s.ledger.Debts())
	default:
		return nil, fmt.Errorf("%w: %s", storage.ErrUnknownCollection, name)
	}
}

// enqueue queues a change event stamped with the save time. Callers hold mu,
// so events leave in the order the collections were saved.
func (s *FinanceService) enqueue(ctx context.Context, name string, payload []byte) {
	if s.events == nil {
		return
	}
	if s.closed {
		s.logger.WarnContext(ctx, "Dropping change event after close", log.FieldCollection, name)
		return
	}
	s.events <- changeEvent{
		ctx:        context.WithoutCancel(ctx),
		collection: name,
		payload:    payload,
		savedAt:    s.now(),
	}
}

func (s *FinanceService) runPublisher() {
	defer close(s.published)
	for ev := range s.events {
		if err := s.publisher.PublishCollectionChanged(ev.ctx, ev.collection, ev.payload, ev.savedAt); err != nil {
			s.structured.LogError(ev.ctx, "Failed to publish collection change", err, log.ComponentAMQP, log.OpPublish,
				log.NewFields().WithCollection(ev.collection, -1))
		}
	}
}

// Queries

// Snapshot returns a copy of every collection.
func (s *FinanceService) Snapshot() analytics.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Snapshot()
}

func (s *FinanceService) snapshotAt() (analytics.Snapshot, time.Time, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Snapshot(), s.now(), s.trendMonths
}

func (s *FinanceService) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now()
}

func (s *FinanceService) Dashboard() analytics.Dashboard {
	snap, now, _ := s.snapshotAt()
	return analytics.BuildDashboard(snap, now)
}

// Report builds the analysis view over months of trend; 0 uses the
// configured default.
func (s *FinanceService) Report(months int) analytics.Report {
	snap, now, def := s.snapshotAt()
	if months <= 0 {
		months = def
	}
	return analytics.BuildReport(snap, now, months)
}

// Trend returns income, expenses and net per month, oldest first; 0 months
// uses the configured default.
func (s *FinanceService) Trend(months int) []core.MonthSummary {
	snap, now, def := s.snapshotAt()
	if months <= 0 {
		months = def
	}
	return analytics.TrendSeries(snap.Transactions, now, months)
}

// Summary returns the totals of the month containing month.
func (s *FinanceService) Summary(month time.Time) core.Totals {
	snap, _, _ := s.snapshotAt()
	return analytics.MonthTotals(snap.Transactions, month)
}

func (s *FinanceService) CategoryBreakdown(month time.Time) []core.CategoryAmount {
	snap, _, _ := s.snapshotAt()
	return analytics.CategoryBreakdown(snap.Transactions, month)
}

func (s *FinanceService) Transactions(f analytics.TransactionFilter) analytics.FilterResult {
	snap, _, _ := s.snapshotAt()
	return analytics.FilterTransactions(snap.Transactions, f)
}

// Categories lists every transaction category in the ledger.
func (s *FinanceService) Categories() []string {
	snap, _, _ := s.snapshotAt()
	return analytics.Categories(snap.Transactions)
}

func (s *FinanceService) BudgetStatuses() []analytics.BudgetStatus {
	snap, _, _ := s.snapshotAt()
	return analytics.BudgetProgressAll(snap.Budgets)
}

func (s *FinanceService) GoalStatuses() []analytics.GoalStatus {
	snap, now, _ := s.snapshotAt()
	out := make([]analytics.GoalStatus, len(snap.Goals))
	for i, g := range snap.Goals {
		out[i] = analytics.ProjectGoal(g, now)
	}
	return out
}

func (s *FinanceService) RecurringStatuses() []analytics.RecurringStatus {
	snap, now, _ := s.snapshotAt()
	out := make([]analytics.RecurringStatus, len(snap.Recurring))
	for i, r := range snap.Recurring {
		out[i] = analytics.ProjectRecurring(r, now)
	}
	return out
}

func (s *FinanceService) DebtStatuses() []analytics.DebtStatus {
	snap, now, _ := s.snapshotAt()
	out := make([]analytics.DebtStatus, len(snap.Debts))
	for i, d := range snap.Debts {
		out[i] = analytics.ProjectDebt(d, now)
	}
	return out
}

// Transactions

func (s *FinanceService) AddTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.ledger.AddTransaction(tx)
	if err != nil {
		return core.Transaction{}, err
	}
	s.structured.LogMutation(ctx, log.OpCreate, storage.Transactions, stored.ID, stored.Amount.Cents, stored.Category)
	s.persistTransaction(ctx, stored)
	return stored, nil
}

func (s *FinanceService) DeleteTransaction(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var target core.Transaction
	for _, tx := range s.ledger.Transactions() {
		if tx.ID == id {
			target = tx
			break
		}
	}
	if !s.ledger.DeleteTransaction(id) {
		return false
	}
	s.structured.LogMutation(ctx, log.OpDelete, storage.Transactions, id, target.Amount.Cents, target.Category)
	s.persistTransaction(ctx, target)
	return true
}

func (s *FinanceService) persistTransaction(ctx context.Context, tx core.Transaction) {
	if s.ledger.AffectsBudgets(tx) {
		s.persist(ctx, storage.Transactions, storage.Budgets)
		return
	}
	s.persist(ctx, storage.Transactions)
}

// Budgets

func (s *FinanceService) AddBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.ledger.AddBudget(b)
	if err != nil {
		return core.Budget{}, err
	}
	s.structured.LogMutation(ctx, log.OpCreate, storage.Budgets, stored.ID, stored.Limit.Cents, stored.Category)
	s.persist(ctx, storage.Budgets)
	return stored, nil
}

func (s *FinanceService) UpdateBudget(ctx context.Context, id string, p ledger.BudgetPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found, err := s.ledger.UpdateBudget(id, p)
	if !found || err != nil {
		return found, err
	}
	s.structured.LogMutation(ctx, log.OpUpdate, storage.Budgets, id, 0, "")
	s.persist(ctx, storage.Budgets)
	return true, nil
}

// DeleteBudget removes a budget. Transactions in its category are kept.
func (s *FinanceService) DeleteBudget(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ledger.DeleteBudget(id) {
		return false
	}
	s.structured.LogMutation(ctx, log.OpDelete, storage.Budgets, id, 0, "")
	s.persist(ctx, storage.Budgets)
	return true
}

// ReconcileBudgets recomputes spending from stored transactions and saves
// budgets when anything changed.
func (s *FinanceService) ReconcileBudgets(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.ledger.ReconcileBudgets()
	s.logger.InfoContext(ctx, "Budgets reconciled",
		log.FieldOperation, log.OpReconcile,
		"changed", changed)
	if changed > 0 {
		s.persist(ctx, storage.Budgets)
	}
	return changed
}

// Goals

func (s *FinanceService) AddGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.ledger.AddGoal(g)
	if err != nil {
		return core.Goal{}, err
	}
	s.structured.LogMutation(ctx, log.OpCreate, storage.Goals, stored.ID, stored.TargetAmount.Cents, "")
	s.persist(ctx, storage.Goals)
	return stored, nil
}

func (s *FinanceService) UpdateGoal(ctx context.Context, id string, p ledger.GoalPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found, err := s.ledger.UpdateGoal(id, p)
	if !found || err != nil {
		return found, err
	}
	s.structured.LogMutation(ctx, log.OpUpdate, storage.Goals, id, 0, "")
	s.persist(ctx, storage.Goals)
	return true, nil
}

func (s *FinanceService) DeleteGoal(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ledger.DeleteGoal(id) {
		return false
	}
	s.structured.LogMutation(ctx, log.OpDelete, storage.Goals, id, 0, "")
	s.persist(ctx, storage.Goals)
	return true
}

func (s *FinanceService) AddFunds(ctx context.Context, id string, amount core.Money) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found, err := s.ledger.AddFunds(id, amount)
	if !found || err != nil {
		return found, err
	}
	s.structured.LogMutation(ctx, log.OpFunds, storage.Goals, id, amount.Cents, "")
	s.persist(ctx, storage.Goals)
	return true, nil
}

// Recurring transactions

func (s *FinanceService) AddRecurring(ctx context.Context, r core.RecurringTransaction) (core.RecurringTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.ledger.AddRecurring(r)
	if err != nil {
		return core.RecurringTransaction{}, err
	}
	s.structured.LogMutation(ctx, log.OpCreate, storage.RecurringTransactions, stored.ID, stored.Amount.Cents, stored.Category)
	s.persist(ctx, storage.RecurringTransactions)
	return stored, nil
}

func (s *FinanceService) DeleteRecurring(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ledger.DeleteRecurring(id) {
		return false
	}
	s.structured.LogMutation(ctx, log.OpDelete, storage.RecurringTransactions, id, 0, "")
	s.persist(ctx, storage.RecurringTransactions)
	return true
}

// Debts

func (s *FinanceService) AddDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.ledger.AddDebt(d)
	if err != nil {
		return core.Debt{}, err
	}
	s.structured.LogMutation(ctx, log.OpCreate, storage.Debts, stored.ID, stored.RemainingAmount.Cents, "")
	s.persist(ctx, storage.Debts)
	return stored, nil
}

func (s *FinanceService) UpdateDebt(ctx context.Context, id string, p ledger.DebtPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found, err := s.ledger.UpdateDebt(id, p)
	if !found || err != nil {
		return found, err
	}
	s.structured.LogMutation(ctx, log.OpUpdate, storage.Debts, id, 0, "")
	s.persist(ctx, storage.Debts)
	return true, nil
}

func (s *FinanceService) DeleteDebt(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ledger.DeleteDebt(id) {
		return false
	}
	s.structured.LogMutation(ctx, log.OpDelete, storage.Debts, id, 0, "")
	s.persist(ctx, storage.Debts)
	return true
}

// MakePayment reduces a debt's remaining balance. Payments above the
// balance are rejected with core.ErrOverpayment.
func (s *FinanceService) MakePayment(ctx context.Context, id string, amount core.Money) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found, err := s.ledger.MakePayment(id, amount)
	if !found || err != nil {
		return found, err
	}
	s.structured.LogMutation(ctx, log.OpPayment, storage.Debts, id, amount.Cents, "")
	s.persist(ctx, storage.Debts)
	return true, nil
}
