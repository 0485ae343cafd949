// Package engine orchestrates solve attempts: it resolves puzzles from the
// registry, runs them safely, and records every attempt in the store.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"finaltrace/internal/logging"
	"finaltrace/internal/puzzle"
	"finaltrace/internal/store"
)

// ErrPuzzleNotFound is returned when an attempt names an unknown puzzle.
var ErrPuzzleNotFound = errors.New("puzzle not found")

// Engine runs puzzles and records attempts.
type Engine struct {
	registry *puzzle.Registry
	store    store.AttemptStore
}

// New creates an engine over the given registry and store.
func New(registry *puzzle.Registry, st store.AttemptStore) *Engine {
	return &Engine{registry: registry, store: st}
}

// List returns the registered puzzle names, sorted.
func (e *Engine) List() []string {
	return e.registry.Names()
}

// Has reports whether the named puzzle exists.
func (e *Engine) Has(name string) bool {
	return e.registry.Has(name)
}

// Describe returns a puzzle's metadata.
func (e *Engine) Describe(name string) (puzzle.Description, error) {
	p := e.registry.Get(name)
	if p == nil {
		return puzzle.Description{}, fmt.Errorf("%w: %s", ErrPuzzleNotFound, name)
	}
	return p.Describe(), nil
}

// Attempt runs one solve attempt. Puzzle-internal failures (errors or
// panics) come back as an unsolved result with an "internal error" message,
// never as a returned error; the only error callers see is an unknown
// puzzle name. Recording failures are logged but do not fail the attempt.
func (e *Engine) Attempt(ctx context.Context, name string, answer puzzle.Answer) (puzzle.Result, error) {
	p := e.registry.Get(name)
	if p == nil {
		return puzzle.Result{}, fmt.Errorf("%w: %s", ErrPuzzleNotFound, name)
	}

	logging.EngineDebug("Attempt: puzzle=%s answer=%s", name, answer)

	started := time.Now()
	res, err := runSafely(ctx, p, answer)
	duration := time.Since(started)

	if err != nil {
		logging.Get(logging.CategoryEngine).Error("Puzzle %s failed internally: %v", name, err)
		res = puzzle.Result{Solved: false, Message: fmt.Sprintf("internal error: %v", err)}
	}

	attempt := store.Attempt{
		ID:        uuid.New().String(),
		Puzzle:    name,
		Answer:    answer.String(),
		Solved:    res.Solved,
		Message:   res.Message,
		Duration:  duration,
		CreatedAt: started.UTC(),
	}
	if recErr := e.store.RecordAttempt(ctx, attempt); recErr != nil {
		logging.Get(logging.CategoryEngine).Warn("Failed to record attempt %s: %v", attempt.ID, recErr)
	}

	logging.EngineDebug("Attempt done: puzzle=%s solved=%v duration=%v", name, res.Solved, duration)
	return res, nil
}

// runSafely executes a puzzle and converts panics into errors so one broken
// puzzle cannot take the process down.
func runSafely(ctx context.Context, p puzzle.Puzzle, answer puzzle.Answer) (res puzzle.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("puzzle panicked: %v", r)
		}
	}()
	return p.Solve(ctx, answer)
}

// Stats aggregates attempt totals and per-puzzle counters from the store.
func (e *Engine) Stats(ctx context.Context) (store.Stats, error) {
	return e.store.Stats(ctx)
}

// Attempts exposes recorded attempts for reporting tools.
func (e *Engine) Attempts(ctx context.Context, puzzleName string, limit int) ([]store.Attempt, error) {
	return e.store.Attempts(ctx, puzzleName, limit)
}
