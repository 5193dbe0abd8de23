// Package cache memoizes link lookups within a single run.
package cache

import "sync"

// Memo remembers the result of a string transform per key. It lives as long
// as the run that created it.
type Memo struct {
	mu    sync.RWMutex
	items map[string]string
}

func New() *Memo {
	return &Memo{items: make(map[string]string)}
}

func (m *Memo) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.items[key]
	return v, ok
}

func (m *Memo) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = value
}

// Do returns the memoized value for key, computing it with fn on a miss.
func (m *Memo) Do(key string, fn func(string) string) string {
	if v, ok := m.Get(key); ok {
		return v
	}
	v := fn(key)
	m.Set(key, v)
	return v
}
