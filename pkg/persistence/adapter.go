// Package persistence stores the serialized wallet state.
//
// Adapters are key/value stores for text. They do not know anything
// about the format of the values they store.
package persistence

import (
	"context"
	"errors"
)

var ErrKeyEmpty = errors.New("the key must not be empty")

// Adapter loads and saves serialized state.
type Adapter interface {
	// Load returns the text stored for key. ok is false if nothing
	// has been saved for the key yet.
	Load(ctx context.Context, key string) (text string, ok bool, err error)

	// Save stores text for key, replacing the previous value.
	Save(ctx context.Context, key, text string) error
}
