// Package store persists solve attempts and derives counters from them.
// Two backends exist: an in-memory store for tests and one-shot CLI runs,
// and a SQLite store for the long-running server.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store: closed")

// Attempt is one recorded solve attempt.
type Attempt struct {
	ID        string        `json:"id"`
	Puzzle    string        `json:"puzzle"`
	Answer    string        `json:"answer"`
	Solved    bool          `json:"ok"`
	Message   string        `json:"message"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// Stats aggregates the store contents.
type Stats struct {
	TotalAttempts int64            `json:"total_attempts"`
	TotalSolved   int64            `json:"total_solved"`
	Counters      map[string]int64 `json:"counters"` // per-puzzle attempt counts
}

// AttemptStore records attempts and answers aggregate queries.
type AttemptStore interface {
	// RecordAttempt persists one attempt and bumps the puzzle's counter.
	RecordAttempt(ctx context.Context, a Attempt) error

	// Counters returns per-puzzle attempt counts.
	Counters(ctx context.Context) (map[string]int64, error)

	// Attempts returns recorded attempts, newest first. An empty puzzle
	// name matches all puzzles; limit <= 0 means a default of 50.
	Attempts(ctx context.Context, puzzle string, limit int) ([]Attempt, error)

	// Stats aggregates totals and counters.
	Stats(ctx context.Context) (Stats, error)

	Close() error
}

const defaultAttemptLimit = 50
