// Package events distributes notifications about changes to the wallet
// state so that clients can re-render.
package events

import (
	"context"
	"encoding/json"
	"time"
)

type Type string

const (
	MonthAdded       Type = "month.added"
	LimitSet         Type = "month.limit_set"
	TransactionAdded Type = "transaction.added"
	CategoryAdded    Type = "category.added"
	StateRestored    Type = "state.restored"
)

// Event describes a single change.
type Event struct {
	Type  Type      `json:"type" example:"transaction.added"`
	Month string    `json:"month,omitempty" example:"2024-05"`
	Time  time.Time `json:"time" example:"2024-05-12T17:59:23Z"`
	Data  any       `json:"data,omitempty"` // The created resource, if any
}

// JSON returns the JSON encoding of the event.
func (e Event) JSON() ([]byte, error) {
	return json.Marshal(e)
}

// Notifier is notified about every change.
type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, e Event) error

func (f NotifierFunc) Notify(ctx context.Context, e Event) error {
	return f(ctx, e)
}
