package persistence

import (
	"context"
	"sync"
)

// Memory keeps all values in memory. Values are lost when the process exits.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{
		values: make(map[string]string),
	}
}

func (m *Memory) Load(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrKeyEmpty
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	text, ok := m.values[key]
	return text, ok, nil
}

func (m *Memory) Save(_ context.Context, key, text string) error {
	if key == "" {
		return ErrKeyEmpty
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = text
	return nil
}
