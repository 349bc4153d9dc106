package controllers_test

import (
	"net/http"

	"github.com/envelope-zero/wallet/internal/test"
)

func (suite *TestSuiteStandard) TestHealthzSuccess() {
	recorder := suite.request(http.MethodGet, "http://example.com/healthz", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestHealthzOptions() {
	recorder := suite.request(http.MethodOptions, "http://example.com/healthz", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET", recorder.Header().Get("allow"))
}

func (suite *TestSuiteClosedDB) TestHealthzFail() {
	recorder := test.Request(suite.T(), suite.controller, http.MethodGet, "http://example.com/healthz", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
	suite.Assert().Contains(test.DecodeError(suite.T(), recorder.Body.Bytes()), "an error occurred on the server")
}

// The state is kept in memory when it cannot be saved.
func (suite *TestSuiteClosedDB) TestChangesWithoutStorage() {
	recorder := test.Request(suite.T(), suite.controller, http.MethodPost, "http://example.com/v1/months", `{"month": "2024-05"}`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.T(), suite.controller, http.MethodGet, "http://example.com/v1/months/2024-05", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
}
