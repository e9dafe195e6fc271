package realtime

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryRelay keeps the last value per path in process memory. It backs
// live status when no hosted relay is configured.
type MemoryRelay struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryRelay() *MemoryRelay {
	return &MemoryRelay{values: make(map[string][]byte)}
}

func (m *MemoryRelay) Name() string {
	return "memory"
}

func (m *MemoryRelay) Publish(ctx context.Context, path string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.values[path] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryRelay) Get(ctx context.Context, path string, dest interface{}) error {
	m.mu.RLock()
	data, ok := m.values[path]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(data, dest)
}
