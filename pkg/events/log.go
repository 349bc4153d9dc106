package events

import (
	"context"

	"github.com/rs/zerolog"
)

// Log writes every event to a zerolog logger.
type Log struct {
	Logger zerolog.Logger
}

func (l Log) Notify(_ context.Context, e Event) error {
	event := l.Logger.Debug().Str("event", string(e.Type)).Time("time", e.Time)
	if e.Month != "" {
		event = event.Str("month", e.Month)
	}

	event.Msg("wallet changed")
	return nil
}
