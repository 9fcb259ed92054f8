package mocks

import (
	"context"
	"sync"
	"time"
)

// MockCache is an in-memory mock implementation of the Cache interface
// Used for testing without requiring a real Redis instance
type MockCache struct {
	data map[string]string
	mu   sync.RWMutex

	GetErr error
	SetErr error
}

// NewMockCache creates a new mock cache instance
func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string]string)}
}

// Get retrieves a value from the mock cache
func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetErr != nil {
		return "", m.GetErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return empty string for non-existent keys (like Redis)
	return m.data[key], nil
}

// Set stores a value in the mock cache
func (m *MockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if m.SetErr != nil {
		return m.SetErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch v := value.(type) {
	case string:
		m.data[key] = v
	case []byte:
		m.data[key] = string(v)
	}
	// Note: expiration is ignored in mock (no TTL implementation)
	return nil
}

// Seed stores a raw value directly, bypassing Set error injection
func (m *MockCache) Seed(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Len returns how many keys the mock currently holds
func (m *MockCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
