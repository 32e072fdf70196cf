package store

import (
	"context"
	"fmt"
	"sync"
)

// Memory is a volatile KV, with an optional quota on the size of a value.
type Memory struct {
	mu    sync.Mutex
	quota int
	data  map[string][]byte
}

// NewMemory returns an empty store. A quota <= 0 means unlimited.
func NewMemory(quota int) *Memory {
	return &Memory{quota: quota, data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	if m.quota > 0 && len(value) > m.quota {
		return fmt.Errorf("set %q (%d bytes, quota %d): %w", key, len(value), m.quota, ErrQuotaExceeded)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Close() error { return nil }
