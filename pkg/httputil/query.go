package httputil

import (
	"github.com/envelope-zero/wallet/internal/types"
	"github.com/envelope-zero/wallet/internal/uuid"
	"github.com/envelope-zero/wallet/pkg/models"
	"github.com/gin-gonic/gin"
)

// ContextURL is the key of the API base URL in the gin context.
const ContextURL = "wallet-api-url"

// MonthParam parses the "month" path parameter.
func MonthParam(c *gin.Context) (types.Month, error) {
	month, err := models.ParseMonth(c.Param("month"))
	if err != nil {
		return types.Month{}, err
	}

	if month.IsZero() {
		return types.Month{}, models.ErrMonthInvalid
	}

	return month, nil
}

// UUIDParam parses the "id" path parameter.
func UUIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, ErrInvalidUUID
	}

	return id, nil
}

// BaseURL returns the base URL of the API.
func BaseURL(c *gin.Context) string {
	return c.GetString(ContextURL)
}
