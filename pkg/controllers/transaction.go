package controllers

import (
	"net/http"

	"github.com/envelope-zero/wallet/pkg/httputil"
	"github.com/gin-gonic/gin"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:id", co.OptionsTransactionDetail)
	r.GET("/:id", co.GetTransaction)
}

// OptionsTransactionDetail returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs.
//	@Tags			Transactions
//	@Success		204
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/transactions/{id} [options]
func (co Controller) OptionsTransactionDetail(c *gin.Context) {
	httputil.OptionsGet(c)
}

// CreateTransaction books a transaction on a month
//
//	@Summary		Create transaction
//	@Description	Books a transaction dated today on the budget of the month
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Success		201			{object}	TransactionResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		422			{object}	httputil.HTTPError	"The amount is more than the remaining budget"
//	@Param			month		path		string				true	"The month in YYYY-MM format"
//	@Param			transaction	body		TransactionCreate	true	"Transaction"
//	@Router			/v1/months/{month}/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	month, err := httputil.MonthParam(c)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	var data TransactionCreate
	if err := httputil.BindData(c, &data); err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	t, err := co.Session.AddTransaction(requestContext(c), month, data.Category, data.CustomCategory, data.Amount)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: t})
}

// GetTransaction returns a single transaction
//
//	@Summary		Get transaction
//	@Description	Returns a specific transaction
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	TransactionResponse
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	id, err := httputil.UUIDParam(c)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	t, err := co.Session.Transaction(id)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: t})
}
