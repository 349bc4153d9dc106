package models_test

import (
	"context"
	"errors"

	"github.com/envelope-zero/wallet/internal/types"
	"github.com/envelope-zero/wallet/internal/uuid"
	"github.com/envelope-zero/wallet/pkg/events"
	"github.com/envelope-zero/wallet/pkg/models"
	"github.com/shopspring/decimal"
)

// failingAdapter fails every operation.
type failingAdapter struct{}

var errStorage = errors.New("storage is on fire")

func (failingAdapter) Load(context.Context, string) (string, bool, error) {
	return "", false, errStorage
}

func (failingAdapter) Save(context.Context, string, string) error {
	return errStorage
}

func (suite *TestSuiteStandard) TestSessionScenario() {
	suite.session.AddMonth(suite.ctx, may)
	_, err := suite.session.SetLimit(suite.ctx, may, decimal.NewFromInt(100))
	suite.Require().Nil(err)

	t, err := suite.session.AddTransaction(suite.ctx, may, "Food", "", decimal.NewFromInt(40))
	suite.Require().Nil(err)
	suite.Assert().Equal(types.NewDate(2024, 5, 12), t.Date, "transactions are dated today")

	_, err = suite.session.AddTransaction(suite.ctx, may, "Bills", "", decimal.NewFromInt(70))
	suite.Assert().ErrorIs(err, models.ErrBudgetExceeded)

	summary, err := suite.session.Summary(may)
	suite.Require().Nil(err)
	assertDecimal(suite.T(), "40", summary.Spent)
	assertDecimal(suite.T(), "60", summary.Remaining)
	assertDecimal(suite.T(), "60", suite.session.Remaining(may))

	transactions, err := suite.session.Transactions(may)
	suite.Require().Nil(err)
	suite.Assert().Len(transactions, 1)

	suite.Assert().Equal([]events.Type{events.MonthAdded, events.LimitSet, events.TransactionAdded}, suite.eventTypes())
}

func (suite *TestSuiteStandard) TestSessionAddMonthIdempotent() {
	suite.Assert().True(suite.session.AddMonth(suite.ctx, may))
	suite.Assert().False(suite.session.AddMonth(suite.ctx, may))
	suite.Assert().False(suite.session.AddMonth(suite.ctx, types.Month{}))

	suite.Assert().Len(suite.session.Budgets(), 1)
	suite.Assert().Len(suite.events, 1, "no-ops must not notify")
}

func (suite *TestSuiteStandard) TestSessionSetLimitProperty() {
	suite.fundedMonth(may, "100")
	_, err := suite.session.AddTransaction(suite.ctx, may, "Food", "", decimal.RequireFromString("33.33"))
	suite.Require().Nil(err)

	for _, v := range []string{"33.33", "50", "1000.01"} {
		summary, err := suite.session.SetLimit(suite.ctx, may, decimal.RequireFromString(v))
		suite.Require().Nil(err)

		want := decimal.RequireFromString(v).Sub(decimal.RequireFromString("33.33"))
		suite.Assert().True(want.Equal(summary.Remaining))
		suite.Assert().True(want.Equal(suite.session.Remaining(may)))
	}

	_, err = suite.session.SetLimit(suite.ctx, may, decimal.RequireFromString("33.32"))
	suite.Assert().ErrorIs(err, models.ErrValidation)
	assertDecimal(suite.T(), "966.68", suite.session.Remaining(may), "limit must be unchanged")
}

func (suite *TestSuiteStandard) TestSessionAddTransactionCustomCategory() {
	suite.fundedMonth(may, "100")

	t, err := suite.session.AddTransaction(suite.ctx, may, models.CategoryOthers, "Gym", decimal.NewFromInt(20))
	suite.Require().Nil(err)
	suite.Assert().Equal("Gym", t.Category)
	suite.Assert().Equal([]string{"Food", "Transport", "Leisure", "Bills", "Gym", "Others"}, suite.session.Categories())
	suite.Assert().Contains(suite.eventTypes(), events.CategoryAdded)

	// A custom category is not registered when the transaction is rejected
	_, err = suite.session.AddTransaction(suite.ctx, may, models.CategoryOthers, "Yacht", decimal.NewFromInt(1000))
	suite.Assert().ErrorIs(err, models.ErrBudgetExceeded)
	suite.Assert().NotContains(suite.session.Categories(), "Yacht")

	_, err = suite.session.AddTransaction(suite.ctx, may, models.CategoryOthers, "", decimal.NewFromInt(1))
	suite.Assert().ErrorIs(err, models.ErrValidation)

	_, err = suite.session.AddTransaction(suite.ctx, may, models.CategoryOthers, models.CategoryOthers, decimal.NewFromInt(1))
	suite.Assert().ErrorIs(err, models.ErrValidation)
	suite.Assert().Len(suite.session.Categories(), 6)

	transactions, err := suite.session.Transactions(may)
	suite.Require().Nil(err)
	suite.Assert().Len(transactions, 1, "no transaction is booked on the sentinel category")
}

func (suite *TestSuiteStandard) TestSessionAddCustomCategory() {
	suite.Assert().True(suite.session.AddCustomCategory(suite.ctx, "Gym"))
	suite.Assert().False(suite.session.AddCustomCategory(suite.ctx, "Gym"))
	suite.Assert().False(suite.session.AddCustomCategory(suite.ctx, ""))

	suite.Assert().Equal([]string{"Food", "Transport", "Leisure", "Bills", "Gym", "Others"}, suite.session.Categories())
	suite.Assert().Equal([]events.Type{events.CategoryAdded}, suite.eventTypes())

	text, ok, err := suite.adapter.Load(suite.ctx, models.KeyCategories)
	suite.Require().Nil(err)
	suite.Require().True(ok)
	suite.Assert().JSONEq(`["Gym"]`, text)

	// A category without transactions survives a reload
	loaded := suite.newSession(suite.adapter)
	suite.Require().Nil(loaded.Load(suite.ctx))
	suite.Assert().Equal([]string{"Food", "Transport", "Leisure", "Bills", "Gym", "Others"}, loaded.Categories())
}

func (suite *TestSuiteStandard) TestSessionLoadCategoriesOrder() {
	suite.Require().Nil(suite.adapter.Save(suite.ctx, models.KeyCategories, `["Pets", "Gym"]`))
	suite.Require().Nil(suite.adapter.Save(suite.ctx, models.KeyTransactions, `[
		{"id": "65392deb-5e92-4268-b114-297faad6cdce", "month": "2024-05", "date": "2024-05-12", "category": "Travel", "amount": "5"},
		{"id": "0f1b4a2e-7c53-4b8e-9d3a-2c9e5a7f1b60", "month": "2024-05", "date": "2024-05-13", "category": "Gym", "amount": "5"}
	]`))

	suite.Require().Nil(suite.session.Load(suite.ctx))
	suite.Assert().Equal([]string{"Food", "Transport", "Leisure", "Bills", "Pets", "Gym", "Travel", "Others"}, suite.session.Categories())

	suite.Require().Nil(suite.adapter.Save(suite.ctx, models.KeyCategories, `{{{`))
	suite.Assert().NotNil(suite.session.Load(suite.ctx))
}

func (suite *TestSuiteStandard) TestSessionSelectMonth() {
	_, ok := suite.session.Selected()
	suite.Assert().False(ok)

	suite.Assert().ErrorIs(suite.session.SelectMonth(may), models.ErrNotFound)

	suite.session.AddMonth(suite.ctx, may)
	suite.events = nil

	suite.Require().Nil(suite.session.SelectMonth(may))
	selected, ok := suite.session.Selected()
	suite.Assert().True(ok)
	suite.Assert().Equal(may, selected)
	suite.Assert().Empty(suite.events, "selecting a month is not a change")
}

func (suite *TestSuiteStandard) TestSessionReadsUnknownMonth() {
	_, err := suite.session.Summary(june)
	suite.Assert().ErrorIs(err, models.ErrNotFound)

	_, err = suite.session.Budget(june)
	suite.Assert().ErrorIs(err, models.ErrNotFound)

	_, err = suite.session.Transactions(june)
	suite.Assert().ErrorIs(err, models.ErrNotFound)

	_, err = suite.session.Breakdown(june)
	suite.Assert().ErrorIs(err, models.ErrNotFound)

	_, err = suite.session.Series(june)
	suite.Assert().ErrorIs(err, models.ErrNotFound)

	_, err = suite.session.Transaction(uuid.New())
	suite.Assert().ErrorIs(err, models.ErrNotFound)

	assertDecimal(suite.T(), "0", suite.session.Remaining(june))
}

func (suite *TestSuiteStandard) TestSessionBudget() {
	suite.fundedMonth(may, "100")
	_, err := suite.session.AddTransaction(suite.ctx, may, "Food", "", decimal.NewFromInt(40))
	suite.Require().Nil(err)

	entry, err := suite.session.Budget(may)
	suite.Require().Nil(err)
	suite.Assert().Equal(may, entry.Month)
	assertDecimal(suite.T(), "100", entry.Limit)
	assertDecimal(suite.T(), "40", entry.Spent)
}

func (suite *TestSuiteStandard) TestSessionTransactionsEmpty() {
	suite.session.AddMonth(suite.ctx, may)

	transactions, err := suite.session.Transactions(may)
	suite.Require().Nil(err)
	suite.Assert().NotNil(transactions)
	suite.Assert().Empty(transactions)
}

func (suite *TestSuiteStandard) TestSessionPersistsEveryChange() {
	suite.fundedMonth(may, "100")
	t, err := suite.session.AddTransaction(suite.ctx, may, "Food", "", decimal.NewFromInt(40))
	suite.Require().Nil(err)

	text, ok, err := suite.adapter.Load(suite.ctx, models.KeyBudgets)
	suite.Require().Nil(err)
	suite.Require().True(ok)
	suite.Assert().JSONEq(`{"2024-05": {"month": "2024-05", "limit": "100", "spent": "40"}}`, text)

	text, ok, err = suite.adapter.Load(suite.ctx, models.KeyTransactions)
	suite.Require().Nil(err)
	suite.Require().True(ok)
	suite.Assert().Contains(text, t.ID.String())

	// A fresh session loads the same state
	loaded := suite.newSession(suite.adapter)
	suite.Require().Nil(loaded.Load(suite.ctx))

	summary, err := loaded.Summary(may)
	suite.Require().Nil(err)
	assertDecimal(suite.T(), "100", summary.Limit)
	assertDecimal(suite.T(), "40", summary.Spent)

	found, err := loaded.Transaction(t.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal(t.Category, found.Category)
	suite.Assert().True(t.Amount.Equal(found.Amount))
}

func (suite *TestSuiteStandard) TestSessionLoadEmpty() {
	suite.Require().Nil(suite.session.Load(suite.ctx))
	suite.Assert().Empty(suite.session.Budgets())

	// Sessions without adapter do not load anything
	suite.Require().Nil(models.NewSession().Load(suite.ctx))
}

func (suite *TestSuiteStandard) TestSessionLoadRecomputesSpent() {
	id := uuid.New()
	suite.Require().Nil(suite.adapter.Save(suite.ctx, models.KeyBudgets, `{"2024-05": {"month": "2024-05", "limit": "100", "spent": "999"}}`))
	suite.Require().Nil(suite.adapter.Save(suite.ctx, models.KeyTransactions, `[
		{"id": "`+id.String()+`", "month": "2024-05", "date": "2024-05-01", "category": "Food", "amount": "10"},
		{"id": "`+uuid.New().String()+`", "month": "2024-06", "date": "2024-06-01", "category": "Gym", "amount": "5"}
	]`))

	suite.Require().Nil(suite.session.Load(suite.ctx))

	summary, err := suite.session.Summary(may)
	suite.Require().Nil(err)
	assertDecimal(suite.T(), "10", summary.Spent, "spent must be computed from transactions")

	// Months only referenced by transactions are created
	summary, err = suite.session.Summary(june)
	suite.Require().Nil(err)
	assertDecimal(suite.T(), "0", summary.Limit)
	assertDecimal(suite.T(), "5", summary.Spent)
	suite.Assert().Equal(models.StatusOverspent, summary.Status)

	// Categories used by transactions are registered
	suite.Assert().Contains(suite.session.Categories(), "Gym")
}

func (suite *TestSuiteStandard) TestSessionLoadCorrupt() {
	suite.Require().Nil(suite.adapter.Save(suite.ctx, models.KeyBudgets, `{{{`))
	suite.Assert().NotNil(suite.session.Load(suite.ctx))

	suite.Assert().ErrorIs(suite.newSession(failingAdapter{}).Load(suite.ctx), errStorage)
}

func (suite *TestSuiteStandard) TestSessionIgnoresPersistenceFailures() {
	suite.session = suite.newSession(failingAdapter{})

	suite.Assert().True(suite.session.AddMonth(suite.ctx, may))
	_, err := suite.session.SetLimit(suite.ctx, may, decimal.NewFromInt(10))
	suite.Require().Nil(err)
	_, err = suite.session.AddTransaction(suite.ctx, may, "Food", "", decimal.NewFromInt(5))
	suite.Require().Nil(err)

	assertDecimal(suite.T(), "5", suite.session.Remaining(may))
}

func (suite *TestSuiteStandard) TestSessionIgnoresNotifierFailures() {
	s := models.NewSession(models.WithNotifiers(events.NotifierFunc(func(context.Context, events.Event) error {
		return errors.New("nobody is listening")
	})))

	suite.Assert().True(s.AddMonth(suite.ctx, may))
}

func (suite *TestSuiteStandard) TestSessionRestore() {
	suite.fundedMonth(june, "10")
	suite.Require().Nil(suite.session.SelectMonth(june))

	suite.session.Restore(suite.ctx, models.Snapshot{
		Budgets: []models.BudgetEntry{{Month: may, Limit: decimal.NewFromInt(50)}},
		Transactions: []models.Transaction{
			{ID: uuid.New(), Month: may, Date: types.NewDate(2024, 5, 3), Category: "Food", Amount: decimal.NewFromInt(20)},
			{ID: uuid.New(), Date: types.NewDate(2024, 5, 3), Category: "Food", Amount: decimal.NewFromInt(20)},
		},
	})

	budgets := suite.session.Budgets()
	suite.Require().Len(budgets, 1)
	suite.Assert().Equal(may, budgets[0].Month)
	assertDecimal(suite.T(), "30", budgets[0].Remaining)
	suite.Assert().Equal(1, budgets[0].Transactions, "transactions without month are skipped")

	_, ok := suite.session.Selected()
	suite.Assert().False(ok, "selection of a month that no longer exists is cleared")

	suite.Assert().Equal(events.StateRestored, suite.events[len(suite.events)-1].Type)

	// The restored state has been saved
	loaded := suite.newSession(suite.adapter)
	suite.Require().Nil(loaded.Load(suite.ctx))
	suite.Assert().Len(loaded.Budgets(), 1)
}

func (suite *TestSuiteStandard) TestSessionBreakdown() {
	suite.fundedMonth(may, "100")
	for _, c := range []string{"Food", "Bills", "Food"} {
		_, err := suite.session.AddTransaction(suite.ctx, may, c, "", decimal.NewFromInt(10))
		suite.Require().Nil(err)
	}

	breakdown, err := suite.session.Breakdown(may)
	suite.Require().Nil(err)
	assertDecimal(suite.T(), "20", breakdown["Food"])
	assertDecimal(suite.T(), "10", breakdown["Bills"])

	series, err := suite.session.Series(may)
	suite.Require().Nil(err)
	suite.Assert().Equal([]string{"Bills", "Food"}, []string{series[0].Label, series[1].Label})

	snap := suite.session.Snapshot()
	suite.Assert().Len(snap.Budgets, 1)
	suite.Assert().Len(snap.Transactions, 3)
}

func (suite *TestSuiteStandard) TestSessionEventTime() {
	suite.session.AddMonth(suite.ctx, may)

	suite.Require().Len(suite.events, 1)
	suite.Assert().Equal(today, suite.events[0].Time)
	suite.Assert().Equal("2024-05", suite.events[0].Month)
}

func (suite *TestSuiteStandard) TestSessionPing() {
	suite.Assert().Nil(suite.session.Ping(suite.ctx))
	suite.Assert().Nil(models.NewSession().Ping(suite.ctx))
	suite.Assert().ErrorIs(suite.newSession(failingAdapter{}).Ping(suite.ctx), errStorage)
}
