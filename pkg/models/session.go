package models

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/envelope-zero/wallet/internal/types"
	"github.com/envelope-zero/wallet/internal/uuid"
	"github.com/envelope-zero/wallet/pkg/events"
	"github.com/envelope-zero/wallet/pkg/persistence"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Session owns the complete wallet state.
//
// All mutations go through the Session. After every change to budgets,
// transactions or categories, the state is saved with the persistence
// adapter and all notifiers are informed. Operations are serialized, each
// one runs to completion before the next one starts.
type Session struct {
	mu sync.Mutex

	budgets      *BudgetStore
	transactions *TransactionLog
	categories   *CategoryRegistry
	selected     types.Month

	adapter   persistence.Adapter
	notifiers []events.Notifier
	now       func() time.Time
}

type Option func(*Session)

// WithAdapter sets the adapter used to load and save the state.
func WithAdapter(a persistence.Adapter) Option {
	return func(s *Session) {
		s.adapter = a
	}
}

// WithNotifiers adds notifiers that are informed about all changes.
func WithNotifiers(n ...events.Notifier) Option {
	return func(s *Session) {
		s.notifiers = append(s.notifiers, n...)
	}
}

// WithClock sets the function used to determine the date of new transactions.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

func NewSession(opts ...Option) *Session {
	budgets := NewBudgetStore()

	s := &Session{
		budgets:      budgets,
		transactions: NewTransactionLog(budgets),
		categories:   NewCategoryRegistry(),
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ParseMonth parses a month in YYYY-MM format. The empty string parses
// to the zero month.
func ParseMonth(s string) (types.Month, error) {
	if s == "" {
		return types.Month{}, nil
	}

	m, err := types.ParseMonth(s)
	if err != nil || m.IsZero() {
		return types.Month{}, fmt.Errorf("%w, got %q", ErrMonthInvalid, s)
	}

	return m, nil
}

// AddMonth creates the budget for a month. It reports whether the month was
// created. The zero month and months that already exist are ignored.
func (s *Session) AddMonth(ctx context.Context, month types.Month) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.budgets.AddMonth(month) {
		return false
	}

	s.changed(ctx, events.Event{Type: events.MonthAdded, Month: month.String()})
	return true
}

// SetLimit sets the budget limit for a month.
func (s *Session) SetLimit(ctx context.Context, month types.Month, limit decimal.Decimal) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.budgets.SetLimit(month, limit); err != nil {
		return Summary{}, err
	}

	summary, err := Summarize(s.budgets, s.transactions, month)
	if err != nil {
		return Summary{}, err
	}

	s.changed(ctx, events.Event{Type: events.LimitSet, Month: month.String(), Data: summary})
	return summary, nil
}

// AddTransaction books a transaction dated today.
//
// If category is CategoryOthers, custom is used as the category and added
// to the category registry once the transaction has been booked.
func (s *Session) AddTransaction(ctx context.Context, month types.Month, category, custom string, amount decimal.Decimal) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, isCustom, err := s.categories.Resolve(category, custom)
	if err != nil {
		return Transaction{}, err
	}

	t, err := s.transactions.Add(month, category, amount, types.DateOf(s.now()))
	if err != nil {
		return Transaction{}, err
	}

	if isCustom && s.categories.AddCustom(category) {
		s.notify(ctx, events.Event{Type: events.CategoryAdded, Data: category})
	}

	s.changed(ctx, events.Event{Type: events.TransactionAdded, Month: month.String(), Data: t})
	return t, nil
}

// AddCustomCategory registers a new category. It reports whether the
// category was added.
func (s *Session) AddCustomCategory(ctx context.Context, label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.categories.AddCustom(label) {
		return false
	}

	s.changed(ctx, events.Event{Type: events.CategoryAdded, Data: strings.TrimSpace(label)})
	return true
}

// SelectMonth sets the month the user is looking at. This does not change
// any budgets or transactions.
func (s *Session) SelectMonth(month types.Month) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.budgets.Get(month); !ok {
		return monthNotFound(month)
	}

	s.selected = month
	return nil
}

// Selected returns the selected month, ok is false if none is selected.
func (s *Session) Selected() (month types.Month, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.selected, !s.selected.IsZero()
}

// Budgets returns the summaries for all months in chronological order.
func (s *Session) Budgets() []Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summaries := make([]Summary, 0, s.budgets.Len())
	for _, month := range s.budgets.Months() {
		summary, _ := Summarize(s.budgets, s.transactions, month)
		summaries = append(summaries, summary)
	}

	return summaries
}

// Budget returns the budget entry for a month.
func (s *Session) Budget(month types.Month) (BudgetEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.budgets.Get(month)
	if !ok {
		return BudgetEntry{}, monthNotFound(month)
	}

	return entry, nil
}

// Summary returns the summary for a month.
func (s *Session) Summary(month types.Month) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Summarize(s.budgets, s.transactions, month)
}

// Remaining returns the remaining budget for a month, zero for unknown months.
func (s *Session) Remaining(month types.Month) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.budgets.Remaining(month)
}

// Transactions returns the transactions for a month in the order they were added.
func (s *Session) Transactions(month types.Month) ([]Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.budgets.Get(month); !ok {
		return nil, monthNotFound(month)
	}

	transactions := slices.Collect(s.transactions.ListForMonth(month))
	if transactions == nil {
		transactions = []Transaction{}
	}

	return transactions, nil
}

// Transaction returns a single transaction.
func (s *Session) Transaction(id uuid.UUID) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.transactions.Find(id)
}

// Breakdown returns the spending per category for a month.
func (s *Session) Breakdown(month types.Month) (map[string]decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.budgets.Get(month); !ok {
		return nil, monthNotFound(month)
	}

	return CategoryBreakdown(s.transactions, month), nil
}

// Series returns the spending per category for a month as chart slices.
func (s *Session) Series(month types.Month) ([]Slice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.budgets.Get(month); !ok {
		return nil, monthNotFound(month)
	}

	return BreakdownSeries(s.transactions, month), nil
}

// Categories returns all category labels, ending with CategoryOthers.
func (s *Session) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.categories.List()
}

// Snapshot returns a copy of the budgets and transactions.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// Ping verifies that the persistence adapter can be read.
func (s *Session) Ping(ctx context.Context) error {
	if s.adapter == nil {
		return nil
	}

	if _, _, err := s.adapter.Load(ctx, KeyBudgets); err != nil {
		return fmt.Errorf("storage is not available: %w", err)
	}

	return nil
}

// Load restores the state from the persistence adapter. Missing keys are
// treated as empty state.
func (s *Session) Load(ctx context.Context) error {
	if s.adapter == nil {
		return nil
	}

	var snap Snapshot

	text, ok, err := s.adapter.Load(ctx, KeyBudgets)
	if err != nil {
		return fmt.Errorf("could not load budgets: %w", err)
	}
	if ok {
		snap.Budgets, err = DecodeBudgets(text)
		if err != nil {
			return err
		}
	}

	text, ok, err = s.adapter.Load(ctx, KeyTransactions)
	if err != nil {
		return fmt.Errorf("could not load transactions: %w", err)
	}
	if ok {
		snap.Transactions, err = DecodeTransactions(text)
		if err != nil {
			return err
		}
	}

	text, ok, err = s.adapter.Load(ctx, KeyCategories)
	if err != nil {
		return fmt.Errorf("could not load categories: %w", err)
	}
	if ok {
		snap.Categories, err = DecodeCategories(text)
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.restore(snap)
	log.Debug().Int("budgets", s.budgets.Len()).Int("transactions", s.transactions.Len()).Msg("state loaded")

	return nil
}

// Restore replaces the complete state with the snapshot and saves it.
func (s *Session) Restore(ctx context.Context, snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.restore(snap)
	s.changed(ctx, events.Event{Type: events.StateRestored})
}

// restore replaces the state with the snapshot.
//
// Transactions are authoritative: the spent amount of every month is
// recomputed from them. Months that only appear in transactions are
// created. Stored custom categories are registered first, followed by
// categories that only appear in transactions.
func (s *Session) restore(snap Snapshot) {
	budgets := NewBudgetStore()
	categories := NewCategoryRegistry()
	for _, c := range snap.Categories {
		categories.AddCustom(c)
	}

	stored := make(map[types.Month]decimal.Decimal, len(snap.Budgets))
	for _, e := range snap.Budgets {
		if e.Month.IsZero() {
			continue
		}

		stored[e.Month] = e.Spent
		e.Spent = decimal.Zero
		budgets.put(e)
	}

	transactions := make([]Transaction, 0, len(snap.Transactions))
	for _, t := range snap.Transactions {
		if t.Month.IsZero() {
			log.Warn().Str("transaction", t.ID.String()).Msg("skipping transaction without month")
			continue
		}
		transactions = append(transactions, t)

		if budgets.AddMonth(t.Month) {
			log.Warn().Str("month", t.Month.String()).Str("transaction", t.ID.String()).Msg("created missing budget for transaction")
		}

		budgets.addSpent(t.Month, t.Amount)
		categories.AddCustom(t.Category)
	}

	for _, e := range budgets.Entries() {
		if spent, ok := stored[e.Month]; ok && !spent.Equal(e.Spent) {
			log.Warn().Str("month", e.Month.String()).Str("stored", spent.String()).Str("computed", e.Spent.String()).Msg("spent does not match transactions, using computed value")
		}
	}

	s.budgets = budgets
	s.transactions = NewTransactionLog(budgets)
	s.transactions.restore(transactions)
	s.categories = categories

	if _, ok := budgets.Get(s.selected); !ok {
		s.selected = types.Month{}
	}
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		Budgets:      s.budgets.Entries(),
		Transactions: slices.Collect(s.transactions.All()),
		Categories:   s.categories.Custom(),
	}
}

// changed persists the state and notifies about the change.
func (s *Session) changed(ctx context.Context, e events.Event) {
	s.persist(ctx)
	s.notify(ctx, e)
}

// persist saves budgets, transactions and custom categories. Errors are
// logged and otherwise ignored.
func (s *Session) persist(ctx context.Context) {
	if s.adapter == nil {
		return
	}

	snap := s.snapshot()

	budgets, err := EncodeBudgets(snap.Budgets)
	if err == nil {
		err = s.adapter.Save(ctx, KeyBudgets, budgets)
	}
	if err != nil {
		log.Warn().Err(err).Str("key", KeyBudgets).Msg("could not save state")
	}

	transactions, err := EncodeTransactions(snap.Transactions)
	if err == nil {
		err = s.adapter.Save(ctx, KeyTransactions, transactions)
	}
	if err != nil {
		log.Warn().Err(err).Str("key", KeyTransactions).Msg("could not save state")
	}

	categories, err := EncodeCategories(snap.Categories)
	if err == nil {
		err = s.adapter.Save(ctx, KeyCategories, categories)
	}
	if err != nil {
		log.Warn().Err(err).Str("key", KeyCategories).Msg("could not save state")
	}
}

// notify sends the event to all notifiers. Errors are logged and
// otherwise ignored.
func (s *Session) notify(ctx context.Context, e events.Event) {
	if e.Time.IsZero() {
		e.Time = s.now().UTC()
	}

	for _, n := range s.notifiers {
		if err := n.Notify(ctx, e); err != nil {
			log.Warn().Err(err).Str("event", string(e.Type)).Msg("could not send notification")
		}
	}
}
