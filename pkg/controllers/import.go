package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/envelope-zero/wallet/pkg/httputil"
	"github.com/envelope-zero/wallet/pkg/importer"
	"github.com/envelope-zero/wallet/pkg/importer/parser/localstorage"
	"github.com/gin-gonic/gin"
)

var (
	errNoFilePost      = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix = fmt.Errorf("this endpoint only supports files matching %s", importer.FilePattern)
)

// RegisterImportRoutes registers the routes for imports with
// the RouterGroup that is passed.
func (co Controller) RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsImport)
	r.POST("", co.Import)
}

// OptionsImport returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs.
//	@Tags			Import
//	@Success		204
//	@Router			/v1/import [options]
func (co Controller) OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// Import replaces the complete state with an uploaded export
//
//	@Summary		Import
//	@Description	Replaces all budgets and transactions with the data exported from the browser version of the wallet
//	@Tags			Import
//	@Accept			multipart/form-data
//	@Produce		json
//	@Success		200		{object}	MonthListResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Param			file	formData	file	true	"File to import"
//	@Router			/v1/import [post]
func (co Controller) Import(c *gin.Context) {
	formFile, err := c.FormFile("file")
	if formFile == nil || err != nil {
		httputil.NewError(c, http.StatusBadRequest, errNoFilePost)
		return
	}

	if !importer.ValidFilename(formFile.Filename) {
		httputil.NewError(c, http.StatusBadRequest, errWrongFileSuffix)
		return
	}

	f, err := formFile.Open()
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}
	defer f.Close()

	snap, err := localstorage.Parse(f)
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	co.Session.Restore(requestContext(c), snap)
	c.JSON(http.StatusOK, MonthListResponse{Data: co.Session.Budgets()})
}
