package cache

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-lsbx/core"
)

// Memory is a process-lifetime cache, useful for tests and single-process
// hosts that do not need tokens to survive restarts.
type Memory struct {
	mu          sync.Mutex
	values      map[string]string
	expirations map[string]time.Time
	now         func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		values:      map[string]string{},
		expirations: map[string]time.Time{},
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.liveLocked(key) {
		return "", false, nil
	}
	return m.values[key], true, nil
}

func (m *Memory) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	if ttl > 0 {
		m.expirations[key] = m.now().Add(ttl)
	} else {
		delete(m.expirations, key)
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	delete(m.expirations, key)
	return nil
}

func (m *Memory) Has(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.liveLocked(key), nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = map[string]string{}
	m.expirations = map[string]time.Time{}
	return nil
}

// liveLocked reports whether key holds an unexpired value, expiring lazily.
func (m *Memory) liveLocked(key string) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	expiresAt, ok := m.expirations[key]
	if ok && !expiresAt.After(m.now()) {
		delete(m.values, key)
		delete(m.expirations, key)
		return false
	}
	return true
}

var _ core.Cache = (*Memory)(nil)
