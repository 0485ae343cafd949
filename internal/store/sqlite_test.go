package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestAttempt(id, puzzle string, solved bool) Attempt {
	return Attempt{
		ID:        id,
		Puzzle:    puzzle,
		Answer:    "33",
		Solved:    solved,
		Message:   "test message",
		Duration:  12 * time.Millisecond,
		CreatedAt: time.Now().UTC(),
	}
}

func TestSQLiteRecordAndQuery(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("Failed to create sqlite store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.RecordAttempt(ctx, newTestAttempt("a1", "logfs", true)); err != nil {
		t.Fatalf("RecordAttempt failed: %v", err)
	}
	if err := s.RecordAttempt(ctx, newTestAttempt("a2", "logfs", false)); err != nil {
		t.Fatalf("RecordAttempt failed: %v", err)
	}
	if err := s.RecordAttempt(ctx, newTestAttempt("a3", "xor-echo", false)); err != nil {
		t.Fatalf("RecordAttempt failed: %v", err)
	}

	counters, err := s.Counters(ctx)
	if err != nil {
		t.Fatalf("Counters failed: %v", err)
	}
	if counters["logfs"] != 2 || counters["xor-echo"] != 1 {
		t.Errorf("unexpected counters: %v", counters)
	}

	attempts, err := s.Attempts(ctx, "logfs", 10)
	if err != nil {
		t.Fatalf("Attempts failed: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("expected 2 logfs attempts, got %d", len(attempts))
	}
	if attempts[0].ID != "a2" {
		t.Errorf("expected newest first, got %s", attempts[0].ID)
	}
	if attempts[0].Duration != 12*time.Millisecond {
		t.Errorf("duration not round-tripped: %v", attempts[0].Duration)
	}
}

func TestSQLiteAttemptsLimit(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("Failed to create sqlite store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		a := newTestAttempt(string(rune('a'+i)), "cryptic-shift", false)
		if err := s.RecordAttempt(ctx, a); err != nil {
			t.Fatalf("RecordAttempt failed: %v", err)
		}
	}

	attempts, err := s.Attempts(ctx, "", 3)
	if err != nil {
		t.Fatalf("Attempts failed: %v", err)
	}
	if len(attempts) != 3 {
		t.Errorf("expected limit of 3, got %d", len(attempts))
	}
}

func TestSQLiteStats(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("Failed to create sqlite store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	s.RecordAttempt(ctx, newTestAttempt("a1", "logfs", true))
	s.RecordAttempt(ctx, newTestAttempt("a2", "logfs", false))
	s.RecordAttempt(ctx, newTestAttempt("a3", "echo-checksum", true))

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalAttempts != 3 {
		t.Errorf("expected 3 attempts, got %d", stats.TotalAttempts)
	}
	if stats.TotalSolved != 2 {
		t.Errorf("expected 2 solved, got %d", stats.TotalSolved)
	}
	if stats.Counters["logfs"] != 2 {
		t.Errorf("unexpected counters: %v", stats.Counters)
	}
}

func TestSQLiteMigrationIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "trace.db")

	s1, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("first open failed: %v", err)
	}
	if err := s1.RecordAttempt(context.Background(), newTestAttempt("a1", "logfs", true)); err != nil {
		t.Fatalf("RecordAttempt failed: %v", err)
	}
	s1.Close()

	// Reopening must re-run migrations without damage.
	s2, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("second open failed: %v", err)
	}
	defer s2.Close()

	counters, err := s2.Counters(context.Background())
	if err != nil {
		t.Fatalf("Counters failed: %v", err)
	}
	if counters["logfs"] != 1 {
		t.Errorf("attempt lost across reopen: %v", counters)
	}
}

func TestSQLiteClosed(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("Failed to create sqlite store: %v", err)
	}
	s.Close()

	if err := s.RecordAttempt(context.Background(), newTestAttempt("a1", "logfs", true)); err != ErrClosed {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if _, err := s.Stats(context.Background()); err != ErrClosed {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}
