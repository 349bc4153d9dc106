package controllers_test

import (
	"net/http"
	"testing"

	"github.com/envelope-zero/wallet/internal/test"
	"github.com/envelope-zero/wallet/internal/types"
	"github.com/envelope-zero/wallet/pkg/controllers"
	"github.com/envelope-zero/wallet/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestMonthsOptions() {
	tests := []struct {
		path  string
		allow string
	}{
		{"http://example.com/v1/months", "OPTIONS, GET, POST"},
		{"http://example.com/v1/months/2024-05", "OPTIONS, GET, PATCH"},
		{"http://example.com/v1/months/2024-05/transactions", "OPTIONS, GET, POST"},
		{"http://example.com/v1/months/2024-05/breakdown", "OPTIONS, GET"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			recorder := test.Request(t, suite.controller, http.MethodOptions, tt.path, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusNoContent)
			assert.Equal(t, tt.allow, recorder.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestMonthsCreate() {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"Create", `{"month": "2024-05"}`, http.StatusCreated},
		{"Existing month", `{"month": "2024-05"}`, http.StatusOK},
		{"Empty month", `{"month": ""}`, http.StatusNoContent},
		{"No month", `{}`, http.StatusNoContent},
		{"Invalid month", `{"month": "May 2024"}`, http.StatusBadRequest},
		{"Zero month", `{"month": "0001-01"}`, http.StatusBadRequest},
		{"Broken body", `{"month": 2024-05}`, http.StatusBadRequest},
		{"Empty body", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, suite.controller, http.MethodPost, "http://example.com/v1/months", tt.body)
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}

	suite.Assert().Len(suite.controller.Session.Budgets(), 1, "only one month must have been created")
}

func (suite *TestSuiteStandard) TestMonthsCreateResponse() {
	recorder := suite.request(http.MethodPost, "http://example.com/v1/months", controllers.MonthCreate{Month: "2024-05"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response controllers.MonthResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal(types.NewMonth(2024, 5), response.Data.Month)
	suite.Assert().True(response.Data.Limit.IsZero())
	suite.Assert().Equal(models.StatusCreated, response.Data.Status)
}

func (suite *TestSuiteStandard) TestMonthsList() {
	suite.createMonth("2024-06", "20")
	suite.createMonth("2023-12", "10")
	suite.createMonth("2024-05", "30")

	recorder := suite.request(http.MethodGet, "http://example.com/v1/months", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.MonthListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	months := make([]string, 0, len(response.Data))
	for _, s := range response.Data {
		months = append(months, s.Month.String())
	}
	suite.Assert().Equal([]string{"2023-12", "2024-05", "2024-06"}, months)
}

func (suite *TestSuiteStandard) TestMonthsListEmpty() {
	recorder := suite.request(http.MethodGet, "http://example.com/v1/months", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	suite.Assert().JSONEq(`{"data": []}`, recorder.Body.String())
}

func (suite *TestSuiteStandard) TestMonthsGet() {
	suite.createMonth("2024-05", "100")
	suite.createTransaction("2024-05", controllers.TransactionCreate{Category: "Food", Amount: decimal.NewFromInt(40)})

	recorder := suite.request(http.MethodGet, "http://example.com/v1/months/2024-05", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	suite.Assert().JSONEq(`{"data": {
		"month": "2024-05",
		"limit": "100",
		"spent": "40",
		"remaining": "60",
		"status": "underspent",
		"overBudget": false,
		"fullySpent": false,
		"transactions": 1
	}}`, recorder.Body.String())
}

func (suite *TestSuiteStandard) TestMonthsGetFail() {
	recorder := suite.request(http.MethodGet, "http://example.com/v1/months/2024-05", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
	suite.Assert().Equal("there is no budget for month 2024-05", test.DecodeError(suite.T(), recorder.Body.Bytes()))

	recorder = suite.request(http.MethodGet, "http://example.com/v1/months/05-2024", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestMonthsUpdate() {
	suite.createMonth("2024-05", "100")
	suite.createTransaction("2024-05", controllers.TransactionCreate{Category: "Food", Amount: decimal.NewFromInt(40)})

	tests := []struct {
		name   string
		month  string
		body   string
		status int
	}{
		{"Lower", "2024-05", `{"limit": "60"}`, http.StatusOK},
		{"Exactly spent", "2024-05", `{"limit": 40}`, http.StatusOK},
		{"Below spent", "2024-05", `{"limit": "39.99"}`, http.StatusBadRequest},
		{"Negative", "2024-05", `{"limit": "-1"}`, http.StatusBadRequest},
		{"Missing limit", "2024-05", `{}`, http.StatusBadRequest},
		{"Not a number", "2024-05", `{"limit": "a lot"}`, http.StatusBadRequest},
		{"Unknown month", "2024-06", `{"limit": "10"}`, http.StatusNotFound},
		{"Invalid month", "2024-13", `{"limit": "10"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, suite.controller, http.MethodPatch, "http://example.com/v1/months/"+tt.month, tt.body)
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}

	summary, err := suite.controller.Session.Summary(types.NewMonth(2024, 5))
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromInt(40).Equal(summary.Limit))
	suite.Assert().Equal(models.StatusFullySpent, summary.Status)
	suite.Assert().True(summary.FullySpent)
}

func (suite *TestSuiteStandard) TestMonthsTransactions() {
	suite.createMonth("2024-05", "100")
	suite.createMonth("2024-06", "100")
	first := suite.createTransaction("2024-05", controllers.TransactionCreate{Category: "Food", Amount: decimal.NewFromInt(40)})
	suite.createTransaction("2024-06", controllers.TransactionCreate{Category: "Food", Amount: decimal.NewFromInt(1)})
	second := suite.createTransaction("2024-05", controllers.TransactionCreate{Category: "Bills", Amount: decimal.NewFromInt(20)})

	recorder := suite.request(http.MethodGet, "http://example.com/v1/months/2024-05/transactions", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal(first.Data.ID, response.Data[0].ID)
	suite.Assert().Equal(second.Data.ID, response.Data[1].ID)
}

func (suite *TestSuiteStandard) TestMonthsTransactionsEmpty() {
	suite.createMonth("2024-05", "100")

	recorder := suite.request(http.MethodGet, "http://example.com/v1/months/2024-05/transactions", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	suite.Assert().JSONEq(`{"data": []}`, recorder.Body.String())

	recorder = suite.request(http.MethodGet, "http://example.com/v1/months/2024-06/transactions", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestMonthsBreakdown() {
	suite.createMonth("2024-05", "100")
	for _, c := range []string{"Food", "Transport", "Food"} {
		suite.createTransaction("2024-05", controllers.TransactionCreate{Category: c, Amount: decimal.RequireFromString("12.5")})
	}

	recorder := suite.request(http.MethodGet, "http://example.com/v1/months/2024-05/breakdown", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	suite.Assert().JSONEq(`{"data": [{"label": "Food", "value": "25"}, {"label": "Transport", "value": "12.5"}]}`, recorder.Body.String())

	recorder = suite.request(http.MethodGet, "http://example.com/v1/months/2024-06/breakdown", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestMonthsPersisted() {
	suite.createMonth("2024-05", "100")

	loaded := models.NewSession(models.WithAdapter(suite.storage))
	suite.Require().Nil(loaded.Load(suite.T().Context()))

	summary, err := loaded.Summary(types.NewMonth(2024, 5))
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromInt(100).Equal(summary.Limit))
}
