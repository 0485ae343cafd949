package store

import (
	"context"
	"sync"
)

// MemoryStore keeps attempts in memory. It is the default backend for
// tests and for CLI commands that do not need persistence.
type MemoryStore struct {
	mu       sync.RWMutex
	attempts []Attempt
	counters map[string]int64
	closed   bool
}

// NewMemoryStore creates an empty in-memory attempt store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[string]int64)}
}

func (m *MemoryStore) RecordAttempt(ctx context.Context, a Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.attempts = append(m.attempts, a)
	m.counters[a.Puzzle]++
	return nil
}

func (m *MemoryStore) Counters(ctx context.Context) (map[string]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	out := make(map[string]int64, len(m.counters))
	for k, v := range m.counters {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryStore) Attempts(ctx context.Context, puzzle string, limit int) ([]Attempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = defaultAttemptLimit
	}

	// Newest first.
	var out []Attempt
	for i := len(m.attempts) - 1; i >= 0 && len(out) < limit; i-- {
		if puzzle != "" && m.attempts[i].Puzzle != puzzle {
			continue
		}
		out = append(out, m.attempts[i])
	}
	return out, nil
}

func (m *MemoryStore) Stats(ctx context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return Stats{}, ErrClosed
	}

	stats := Stats{Counters: make(map[string]int64, len(m.counters))}
	for k, v := range m.counters {
		stats.Counters[k] = v
		stats.TotalAttempts += v
	}
	for _, a := range m.attempts {
		if a.Solved {
			stats.TotalSolved++
		}
	}
	return stats, nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
