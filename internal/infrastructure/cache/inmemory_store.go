package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore implements Store with a process-local map. Suitable for
// single-instance deployments and tests; state is not shared across
// processes.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
	done    chan struct{}
	once    sync.Once
}

type inMemoryEntry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// NewInMemoryStore creates an in-memory store with background expiry sweeps.
func NewInMemoryStore() *InMemoryStore {
	s := &InMemoryStore{
		entries: make(map[string]inMemoryEntry),
		done:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *InMemoryStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for key, e := range s.entries {
				if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Get returns the cached value and whether the key was present and live.
func (s *InMemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true, nil
}

// Set stores a value with the given TTL.
func (s *InMemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := inMemoryEntry{value: make([]byte, len(value))}
	copy(e.value, value)
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}

// Delete removes a key.
func (s *InMemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Close stops the expiry sweeper.
func (s *InMemoryStore) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

// Ensure InMemoryStore implements Store.
var _ Store = (*InMemoryStore)(nil)
