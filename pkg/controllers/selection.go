package controllers

import (
	"net/http"

	"github.com/envelope-zero/wallet/pkg/httputil"
	"github.com/envelope-zero/wallet/pkg/models"
	"github.com/gin-gonic/gin"
)

// RegisterSelectionRoutes registers the routes for the selected month with
// the RouterGroup that is passed.
func (co Controller) RegisterSelectionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsSelection)
	r.GET("", co.GetSelection)
	r.PUT("", co.UpdateSelection)
}

// OptionsSelection returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs.
//	@Tags			Selection
//	@Success		204
//	@Router			/v1/selection [options]
func (co Controller) OptionsSelection(c *gin.Context) {
	httputil.OptionsGetPut(c)
}

func (co Controller) selection() Selection {
	month, ok := co.Session.Selected()
	if !ok {
		return Selection{}
	}

	return Selection{Month: &month}
}

// GetSelection returns the selected month
//
//	@Summary		Get selected month
//	@Description	Returns the month that is currently selected
//	@Tags			Selection
//	@Produce		json
//	@Success		200	{object}	SelectionResponse
//	@Router			/v1/selection [get]
func (co Controller) GetSelection(c *gin.Context) {
	c.JSON(http.StatusOK, SelectionResponse{Data: co.selection()})
}

// UpdateSelection selects a month
//
//	@Summary		Select month
//	@Description	Selects a month. Only months that exist can be selected.
//	@Tags			Selection
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	SelectionResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		404			{object}	httputil.HTTPError
//	@Param			selection	body		SelectionEditor	true	"Selection"
//	@Router			/v1/selection [put]
func (co Controller) UpdateSelection(c *gin.Context) {
	var data SelectionEditor
	if err := httputil.BindData(c, &data); err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	month, err := models.ParseMonth(data.Month)
	if err == nil && month.IsZero() {
		err = models.ErrMonthInvalid
	}
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	if err := co.Session.SelectMonth(month); err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, SelectionResponse{Data: co.selection()})
}
