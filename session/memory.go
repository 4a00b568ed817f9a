package session

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Memory is an in-process session store. The least recently used sessions are
// evicted once capacity is reached; a ttl of zero keeps sessions until eviction.
type Memory struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, map[string]string]
}

func NewMemory(capacity int, ttl time.Duration) *Memory {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Memory{cache: expirable.NewLRU[string, map[string]string](capacity, nil, ttl)}
}

func (m *Memory) Get(_ context.Context, sid, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	values, ok := m.cache.Get(sid)
	if !ok {
		return "", false, nil
	}
	v, ok := values[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, sid, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	values, ok := m.cache.Get(sid)
	if !ok {
		values = make(map[string]string)
	}
	values[key] = value
	m.cache.Add(sid, values)
	return nil
}

func (m *Memory) Delete(_ context.Context, sid, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if values, ok := m.cache.Get(sid); ok {
		delete(values, key)
	}
	return nil
}

func (m *Memory) Destroy(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cache.Remove(sid)
	return nil
}
