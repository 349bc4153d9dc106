package controllers_test

import (
	"net/http"
	"testing"

	"github.com/envelope-zero/wallet/internal/test"
	"github.com/envelope-zero/wallet/pkg/controllers"
	"github.com/envelope-zero/wallet/pkg/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCategoriesOptions() {
	recorder := suite.request(http.MethodOptions, "http://example.com/v1/categories", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, POST", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCategoriesGet() {
	recorder := suite.request(http.MethodGet, "http://example.com/v1/categories", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal(models.DefaultCategories, response.Data)
}

func (suite *TestSuiteStandard) TestCategoriesCreate() {
	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Create", controllers.CategoryCreate{Name: "Gym"}, http.StatusCreated},
		{"Existing custom category", controllers.CategoryCreate{Name: "Gym"}, http.StatusOK},
		{"Default category", controllers.CategoryCreate{Name: "Food"}, http.StatusOK},
		{"Trimmed", controllers.CategoryCreate{Name: "  Pets "}, http.StatusCreated},
		{"Blank", controllers.CategoryCreate{Name: "   "}, http.StatusBadRequest},
		{"Empty body", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, suite.controller, http.MethodPost, "http://example.com/v1/categories", tt.body)
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}

	suite.Assert().Equal([]string{"Food", "Transport", "Leisure", "Bills", "Gym", "Pets", "Others"}, suite.controller.Session.Categories())
}

func (suite *TestSuiteStandard) TestCategoriesCreateResponse() {
	recorder := suite.request(http.MethodPost, "http://example.com/v1/categories", controllers.CategoryCreate{Name: "Gym"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response controllers.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), models.CategoryOthers, response.Data[len(response.Data)-1])
	assert.Contains(suite.T(), response.Data, "Gym")
}
