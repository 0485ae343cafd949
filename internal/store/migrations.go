package store

import (
	"fmt"

	"finaltrace/internal/logging"
)

// schemaVersion is bumped whenever the schema below changes.
const schemaVersion = 1

// migrate brings the database schema up to the current version. All
// statements are idempotent, so re-running on an existing database is safe.
func (s *SQLiteStore) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS schema_versions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			version INTEGER NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			description TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS attempts (
			id TEXT PRIMARY KEY,
			puzzle TEXT NOT NULL,
			answer TEXT NOT NULL DEFAULT '',
			solved BOOLEAN NOT NULL DEFAULT 0,
			message TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_puzzle ON attempts(puzzle)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_created_at ON attempts(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	var current int
	err := s.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_versions`).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if current < schemaVersion {
		_, err = s.db.Exec(
			`INSERT INTO schema_versions (version, description) VALUES (?, ?)`,
			schemaVersion, fmt.Sprintf("Migrated to schema version %d", schemaVersion),
		)
		if err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
		logging.StoreDebug("Recorded schema version %d", schemaVersion)
	}
	return nil
}
