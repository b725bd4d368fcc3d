package apblob

import (
	"context"
	"sync"
)

// MemoryClient keeps blobs in process memory.
type MemoryClient struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		data: make(map[string][]byte),
	}
}

func (m *MemoryClient) Put(_ context.Context, input PutInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[input.Key] = append([]byte(nil), input.Data...)
	return nil
}

func (m *MemoryClient) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.data[key]
	if !ok {
		return nil, ErrBlobNotFound
	}
	return append([]byte(nil), d...), nil
}

var _ Client = (*MemoryClient)(nil)
