package controllers

import (
	"errors"
	"net/http"

	"github.com/envelope-zero/wallet/pkg/httputil"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var errEventsDisabled = errors.New("change notifications are not enabled on this server")

// RegisterEventRoutes registers the route for the change notification
// websocket with the RouterGroup that is passed.
func (co Controller) RegisterEventRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsEvents)
	r.GET("", co.GetEvents)
}

// OptionsEvents returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs.
//	@Tags			Events
//	@Success		204
//	@Router			/v1/events [options]
func (co Controller) OptionsEvents(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetEvents upgrades the request to a websocket for change notifications
//
//	@Summary		Change notifications
//	@Description	Upgrades to a websocket that receives an event for every change. Use the month parameter to only receive events for one month.
//	@Tags			Events
//	@Success		101
//	@Failure		400		{string}	string	"The month is not in YYYY-MM format"
//	@Failure		404		{object}	httputil.HTTPError
//	@Param			month	query		string	false	"The month in YYYY-MM format"
//	@Router			/v1/events [get]
func (co Controller) GetEvents(c *gin.Context) {
	if co.Hub == nil {
		httputil.NewError(c, http.StatusNotFound, errEventsDisabled)
		return
	}

	if err := co.Hub.HandleRequest(c.Writer, c.Request); err != nil {
		log.Debug().Err(err).Str("request-id", requestid.Get(c)).Msg("websocket connection ended")
	}
}
