package controllers

import (
	"net/http"
	"strings"

	"github.com/envelope-zero/wallet/pkg/httputil"
	"github.com/envelope-zero/wallet/pkg/models"
	"github.com/gin-gonic/gin"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsCategoryList)
	r.GET("", co.GetCategories)
	r.POST("", co.CreateCategory)
}

// OptionsCategoryList returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs.
//	@Tags			Categories
//	@Success		204
//	@Router			/v1/categories [options]
func (co Controller) OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// GetCategories returns all categories
//
//	@Summary		Get categories
//	@Description	Returns all categories. "Others" is always the last one.
//	@Tags			Categories
//	@Produce		json
//	@Success		200	{object}	CategoryListResponse
//	@Router			/v1/categories [get]
func (co Controller) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, CategoryListResponse{Data: co.Session.Categories()})
}

// CreateCategory registers a custom category
//
//	@Summary		Create category
//	@Description	Adds a custom category right before "Others". Adding an existing category does not change anything.
//	@Tags			Categories
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	CategoryListResponse	"The category existed already"
//	@Success		201			{object}	CategoryListResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Param			category	body		CategoryCreate	true	"Category"
//	@Router			/v1/categories [post]
func (co Controller) CreateCategory(c *gin.Context) {
	var data CategoryCreate
	if err := httputil.BindData(c, &data); err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	if strings.TrimSpace(data.Name) == "" {
		httputil.ErrorHandler(c, models.ErrCategoryEmpty)
		return
	}

	status := http.StatusOK
	if co.Session.AddCustomCategory(requestContext(c), data.Name) {
		status = http.StatusCreated
	}

	c.JSON(status, CategoryListResponse{Data: co.Session.Categories()})
}
