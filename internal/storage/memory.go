package storage

import (
	"context"
	"sync"

	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// Memory is the in-process fallback adapter. Values are copied on the way in
// and out so callers never share backing arrays with the store.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
	logger interfaces.Logger
}

// NewMemory constructs an empty memory adapter.
func NewMemory(logger interfaces.Logger) *Memory {
	return &Memory{
		values: make(map[string][]byte),
		logger: logging.Ensure(logger),
	}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if !validKey(key) {
		return nil, false, fail(m.logger, StorageMemoryName, opGet, key, ErrKeyRequired)
	}
	if err := ctx.Err(); err != nil {
		return nil, false, fail(m.logger, StorageMemoryName, opGet, key, err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(value), true, nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	if !validKey(key) {
		return fail(m.logger, StorageMemoryName, opSet, key, ErrKeyRequired)
	}
	if err := ctx.Err(); err != nil {
		return fail(m.logger, StorageMemoryName, opSet, key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = cloneBytes(value)
	return nil
}

func (m *Memory) Remove(ctx context.Context, key string) error {
	if !validKey(key) {
		return fail(m.logger, StorageMemoryName, opRemove, key, ErrKeyRequired)
	}
	if err := ctx.Err(); err != nil {
		return fail(m.logger, StorageMemoryName, opRemove, key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Close is a no-op so Memory satisfies interfaces.ClosableStorage.
func (m *Memory) Close() error { return nil }

func cloneBytes(value []byte) []byte {
	if value == nil {
		return nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out
}
