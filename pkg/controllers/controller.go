// Package controllers implements the HTTP handlers for the wallet API.
package controllers

import (
	"context"

	"github.com/envelope-zero/wallet/pkg/events"
	"github.com/envelope-zero/wallet/pkg/models"
	"github.com/gin-gonic/gin"
)

// Controller holds the state all handlers work on.
type Controller struct {
	Session *models.Session
	Hub     *events.Hub // optional, the events endpoint is disabled without it
}

// requestContext returns the context for a request.
//
// The context is not canceled when the client goes away, changes that
// have been made are always persisted.
func requestContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}
