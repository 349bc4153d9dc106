package controllers

import (
	"errors"
	"net/http"

	"github.com/envelope-zero/wallet/pkg/httputil"
	"github.com/envelope-zero/wallet/pkg/models"
	"github.com/gin-gonic/gin"
)

var errLimitNotSet = errors.New("the limit must be set")

// RegisterMonthRoutes registers the routes for months with
// the RouterGroup that is passed.
func (co Controller) RegisterMonthRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", co.OptionsMonthList)
		r.GET("", co.GetMonths)
		r.POST("", co.CreateMonth)
	}

	{
		r.OPTIONS("/:month", co.OptionsMonthDetail)
		r.GET("/:month", co.GetMonth)
		r.PATCH("/:month", co.UpdateMonth)
	}

	{
		r.OPTIONS("/:month/transactions", co.OptionsMonthTransactions)
		r.GET("/:month/transactions", co.GetMonthTransactions)
		r.POST("/:month/transactions", co.CreateTransaction)
	}

	{
		r.OPTIONS("/:month/breakdown", co.OptionsMonthBreakdown)
		r.GET("/:month/breakdown", co.GetMonthBreakdown)
	}
}

// OptionsMonthList returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs.
//	@Tags			Months
//	@Success		204
//	@Router			/v1/months [options]
func (co Controller) OptionsMonthList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsMonthDetail returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs.
//	@Tags			Months
//	@Success		204
//	@Param			month	path	string	true	"The month in YYYY-MM format"
//	@Router			/v1/months/{month} [options]
func (co Controller) OptionsMonthDetail(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// OptionsMonthTransactions returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs.
//	@Tags			Months
//	@Success		204
//	@Param			month	path	string	true	"The month in YYYY-MM format"
//	@Router			/v1/months/{month}/transactions [options]
func (co Controller) OptionsMonthTransactions(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsMonthBreakdown returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs.
//	@Tags			Months
//	@Success		204
//	@Param			month	path	string	true	"The month in YYYY-MM format"
//	@Router			/v1/months/{month}/breakdown [options]
func (co Controller) OptionsMonthBreakdown(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetMonths returns the budgets of all months
//
//	@Summary		Get all months
//	@Description	Returns the budgets of all months in chronological order
//	@Tags			Months
//	@Produce		json
//	@Success		200	{object}	MonthListResponse
//	@Router			/v1/months [get]
func (co Controller) GetMonths(c *gin.Context) {
	c.JSON(http.StatusOK, MonthListResponse{Data: co.Session.Budgets()})
}

// CreateMonth creates the budget for a month
//
//	@Summary		Create month
//	@Description	Creates the budget for a month with a limit of zero. Creating a month that exists already does not change it.
//	@Tags			Months
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	MonthResponse	"The month existed already"
//	@Success		201		{object}	MonthResponse
//	@Success		204		"No month was given"
//	@Failure		400		{object}	httputil.HTTPError
//	@Param			month	body		MonthCreate	true	"Month"
//	@Router			/v1/months [post]
func (co Controller) CreateMonth(c *gin.Context) {
	var data MonthCreate
	if err := httputil.BindData(c, &data); err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	month, err := models.ParseMonth(data.Month)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	if month.IsZero() {
		c.Status(http.StatusNoContent)
		return
	}

	status := http.StatusOK
	if co.Session.AddMonth(requestContext(c), month) {
		status = http.StatusCreated
	}

	summary, err := co.Session.Summary(month)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(status, MonthResponse{Data: summary})
}

// GetMonth returns the budget of a month
//
//	@Summary		Get month
//	@Description	Returns the budget of a month with all values derived from it
//	@Tags			Months
//	@Produce		json
//	@Success		200		{object}	MonthResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		404		{object}	httputil.HTTPError
//	@Param			month	path		string	true	"The month in YYYY-MM format"
//	@Router			/v1/months/{month} [get]
func (co Controller) GetMonth(c *gin.Context) {
	month, err := httputil.MonthParam(c)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	summary, err := co.Session.Summary(month)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, MonthResponse{Data: summary})
}

// UpdateMonth sets the limit of a month
//
//	@Summary		Set the limit
//	@Description	Sets the budget limit for a month
//	@Tags			Months
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	MonthResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		404		{object}	httputil.HTTPError
//	@Param			month	path		string		true	"The month in YYYY-MM format"
//	@Param			limit	body		MonthEditor	true	"Limit"
//	@Router			/v1/months/{month} [patch]
func (co Controller) UpdateMonth(c *gin.Context) {
	month, err := httputil.MonthParam(c)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	var data MonthEditor
	if err := httputil.BindData(c, &data); err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	if data.Limit == nil {
		httputil.NewError(c, http.StatusBadRequest, errLimitNotSet)
		return
	}

	summary, err := co.Session.SetLimit(requestContext(c), month, *data.Limit)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, MonthResponse{Data: summary})
}

// GetMonthTransactions returns the transactions of a month
//
//	@Summary		Get transactions
//	@Description	Returns the transactions of a month in the order they were added
//	@Tags			Months
//	@Produce		json
//	@Success		200		{object}	TransactionListResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		404		{object}	httputil.HTTPError
//	@Param			month	path		string	true	"The month in YYYY-MM format"
//	@Router			/v1/months/{month}/transactions [get]
func (co Controller) GetMonthTransactions(c *gin.Context) {
	month, err := httputil.MonthParam(c)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	transactions, err := co.Session.Transactions(month)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: transactions})
}

// GetMonthBreakdown returns the spending per category for a month
//
//	@Summary		Get spending by category
//	@Description	Returns the sum of all transactions of a month per category
//	@Tags			Months
//	@Produce		json
//	@Success		200		{object}	BreakdownResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		404		{object}	httputil.HTTPError
//	@Param			month	path		string	true	"The month in YYYY-MM format"
//	@Router			/v1/months/{month}/breakdown [get]
func (co Controller) GetMonthBreakdown(c *gin.Context) {
	month, err := httputil.MonthParam(c)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	series, err := co.Session.Series(month)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, BreakdownResponse{Data: series})
}
