package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"finaltrace/internal/logging"
)

// sqliteTimeFormat is fixed-width so string comparison of created_at
// matches chronological order.
const sqliteTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore persists attempts in a single-file SQLite database. A single
// connection plus a mutex keeps writes serialized; WAL mode keeps readers
// unblocked.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
	closed bool
}

// NewSQLiteStore opens (or creates) the database at the given path and
// applies migrations. ":memory:" is supported for tests.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	timer := logging.StartTimer(logging.CategoryStore, "NewSQLiteStore")
	defer timer.Stop()

	logging.Store("Opening attempt store at %s", path)

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			logging.Get(logging.CategoryStore).Error("Failed to create directory %s: %v", dir, err)
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to open database at %s: %v", path, err)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite journal_mode=WAL: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite synchronous=NORMAL: %v", err)
	}

	s := &SQLiteStore{db: db, dbPath: path}
	if err := s.migrate(); err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to initialize schema: %v", err)
		db.Close()
		return nil, err
	}
	logging.StoreDebug("Schema initialized")

	return s, nil
}

func (s *SQLiteStore) RecordAttempt(ctx context.Context, a Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	logging.StoreDebug("Recording attempt: id=%s puzzle=%s solved=%v", a.ID, a.Puzzle, a.Solved)

	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (id, puzzle, answer, solved, message, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Puzzle, a.Answer, a.Solved, a.Message,
		a.Duration.Milliseconds(), createdAt.Format(sqliteTimeFormat),
	)
	if err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to record attempt %s: %v", a.ID, err)
		return fmt.Errorf("failed to record attempt: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Counters(ctx context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT puzzle, COUNT(*) FROM attempts GROUP BY puzzle`)
	if err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to query counters: %v", err)
		return nil, fmt.Errorf("failed to query counters: %w", err)
	}
	defer rows.Close()

	counters := make(map[string]int64)
	for rows.Next() {
		var puzzle string
		var count int64
		if err := rows.Scan(&puzzle, &count); err != nil {
			return nil, fmt.Errorf("failed to scan counter row: %w", err)
		}
		counters[puzzle] = count
	}
	return counters, rows.Err()
}

func (s *SQLiteStore) Attempts(ctx context.Context, puzzle string, limit int) ([]Attempt, error) {
	timer := logging.StartTimer(logging.CategoryStore, "Attempts")
	defer timer.Stop()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = defaultAttemptLimit
	}

	query := `SELECT id, puzzle, answer, solved, message, duration_ms, created_at
	          FROM attempts`
	args := []interface{}{}
	if puzzle != "" {
		query += ` WHERE puzzle = ?`
		args = append(args, puzzle)
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to query attempts: %v", err)
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		var durationMS int64
		var createdAt string
		if err := rows.Scan(&a.ID, &a.Puzzle, &a.Answer, &a.Solved, &a.Message, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan attempt row: %w", err)
		}
		a.Duration = time.Duration(durationMS) * time.Millisecond
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			a.CreatedAt = ts
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Stats{}, ErrClosed
	}

	stats := Stats{Counters: make(map[string]int64)}

	rows, err := s.db.QueryContext(ctx,
		`SELECT puzzle, COUNT(*), SUM(solved) FROM attempts GROUP BY puzzle`)
	if err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to query stats: %v", err)
		return Stats{}, fmt.Errorf("failed to query stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var puzzle string
		var count, solved int64
		if err := rows.Scan(&puzzle, &count, &solved); err != nil {
			return Stats{}, fmt.Errorf("failed to scan stats row: %w", err)
		}
		stats.Counters[puzzle] = count
		stats.TotalAttempts += count
		stats.TotalSolved += solved
	}
	return stats, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	logging.StoreDebug("Closing attempt store at %s", s.dbPath)
	return s.db.Close()
}
