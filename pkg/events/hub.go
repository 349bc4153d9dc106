package events

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/envelope-zero/wallet/internal/types"
	"github.com/olahol/melody"
	"github.com/rs/zerolog/log"
)

// keyMonth is the session key holding the month a client subscribed to.
const keyMonth = "month"

// Hub pushes events to connected websocket clients.
//
// Clients can subscribe to a single month with the "month" query parameter.
// They then only receive events for that month and events that are not
// tied to any month.
type Hub struct {
	m *melody.Melody
}

func NewHub() *Hub {
	m := melody.New()
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		month, _ := s.Get(keyMonth)
		log.Debug().Str("remote", s.Request.RemoteAddr).Interface("month", month).Msg("websocket client connected")
	})

	m.HandleDisconnect(func(s *melody.Session) {
		log.Debug().Str("remote", s.Request.RemoteAddr).Msg("websocket client disconnected")
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Debug().Err(err).Str("remote", s.Request.RemoteAddr).Msg("websocket error")
	})

	return &Hub{m: m}
}

// HandleRequest upgrades the request to a websocket connection and keeps
// it open until the client disconnects or the hub is closed.
//
// Requests with a month filter that cannot be parsed are answered with
// 400 Bad Request and not upgraded.
func (h *Hub) HandleRequest(w http.ResponseWriter, r *http.Request) error {
	keys := map[string]any{}
	if raw := r.URL.Query().Get(keyMonth); raw != "" {
		month, err := types.ParseMonthLoose(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return err
		}
		keys[keyMonth] = month.String()
	}

	return h.m.HandleRequestWithKeys(w, r, keys)
}

func (h *Hub) Notify(_ context.Context, e Event) error {
	msg, err := e.JSON()
	if err != nil {
		return fmt.Errorf("could not encode event: %w", err)
	}

	return h.m.BroadcastFilter(msg, func(s *melody.Session) bool {
		month, ok := s.Get(keyMonth)
		return !ok || e.Month == "" || month == e.Month
	})
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	return h.m.Len()
}

// Close disconnects all clients.
func (h *Hub) Close() error {
	return h.m.Close()
}
