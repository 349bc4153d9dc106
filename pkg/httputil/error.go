package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/envelope-zero/wallet/pkg/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrInvalidUUID      = errors.New("the specified resource ID is not a valid UUID")
)

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"this would exceed your budget: 70 is more than the remaining 60 for 2024-05"`
}

// NewError writes an HTTPError with the status.
func NewError(c *gin.Context, status int, err error) {
	c.JSON(status, HTTPError{
		Error: err.Error(),
	})
}

// Status returns the HTTP status code for an error.
func Status(err error) int {
	var typeError *json.UnmarshalTypeError
	var syntaxError *json.SyntaxError

	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrBudgetExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, ErrRequestBodyEmpty),
		errors.Is(err, ErrInvalidBody),
		errors.Is(err, ErrInvalidUUID),
		errors.Is(err, io.EOF),
		errors.As(err, &typeError),
		errors.As(err, &syntaxError):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// ErrorHandler writes the response for an error.
//
// Errors with a known cause are sent to the client as they are. All
// other errors are logged and the client only gets the request ID.
func ErrorHandler(c *gin.Context, err error) {
	status := Status(err)
	if status != http.StatusInternalServerError {
		NewError(c, status, err)
		return
	}

	log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	NewError(c, status, fmt.Errorf("an error occurred on the server during your request, please contact your server administrator. The request id is '%v', send this to your server administrator to help them finding the problem", requestid.Get(c)))
}
