// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists hop results in a local SQLite database so later
// runs can answer previously executed hops without calling out to remote
// lookup services.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/metamap/pkg/types"
)

// Store manages the mapping cache SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS mappings (
			source_id TEXT NOT NULL,
			source_type TEXT NOT NULL,
			target_id TEXT NOT NULL,
			target_type TEXT NOT NULL,
			confidence REAL NOT NULL,
			metadata TEXT,
			created_at TEXT NOT NULL,
			PRIMARY KEY (source_id, source_type, target_id, target_type)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mappings_lookup
			ON mappings(source_id, source_type, target_type)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// StoreMapping upserts one hop result. A repeated hop refreshes the
// confidence, metadata, and timestamp.
func (s *Store) StoreMapping(ctx context.Context, sourceID string, sourceType types.OntologyType, targetID string, targetType types.OntologyType, confidence float64, metadata map[string]any) error {
	var metadataJSON []byte
	if len(metadata) > 0 {
		var err error
		metadataJSON, err = json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("marshaling metadata: %w", err)
		}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO mappings (source_id, source_type, target_id, target_type, confidence, metadata, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source_id, source_type, target_id, target_type) DO UPDATE SET
			confidence=excluded.confidence, metadata=excluded.metadata, created_at=excluded.created_at`,
		sourceID, sourceType, targetID, targetType, confidence,
		string(metadataJSON), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("storing mapping %s (%s) -> %s (%s): %w",
			sourceID, sourceType, targetID, targetType, err)
	}
	return nil
}

// Lookup returns all cached translations of (id, sourceType) into
// targetType, in insertion order. An empty slice means a cache miss.
func (s *Store) Lookup(ctx context.Context, id string, sourceType, targetType types.OntologyType) ([]types.Mapping, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT target_id, confidence, metadata FROM mappings
		 WHERE source_id = ? AND source_type = ? AND target_type = ?
		 ORDER BY rowid`,
		id, sourceType, targetType,
	)
	if err != nil {
		return nil, fmt.Errorf("querying cache: %w", err)
	}
	defer rows.Close()

	var mappings []types.Mapping
	for rows.Next() {
		var m types.Mapping
		var metadataJSON sql.NullString
		if err := rows.Scan(&m.TargetID, &m.Confidence, &metadataJSON); err != nil {
			return nil, fmt.Errorf("scanning cache row: %w", err)
		}
		if metadataJSON.Valid && metadataJSON.String != "" {
			if err := json.Unmarshal([]byte(metadataJSON.String), &m.Metadata); err != nil {
				return nil, fmt.Errorf("parsing cached metadata: %w", err)
			}
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

// Summary holds cache statistics for the CLI.
type Summary struct {
	Mappings int `json:"mappings" yaml:"mappings"`
	HopKinds int `json:"hop_kinds" yaml:"hop_kinds"`
}

// Stats counts stored mappings and distinct hop kinds.
func (s *Store) Stats(ctx context.Context) (Summary, error) {
	var sum Summary
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM mappings`,
	).Scan(&sum.Mappings); err != nil {
		return Summary{}, fmt.Errorf("counting mappings: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM (SELECT DISTINCT source_type, target_type FROM mappings)`,
	).Scan(&sum.HopKinds); err != nil {
		return Summary{}, fmt.Errorf("counting hop kinds: %w", err)
	}
	return sum, nil
}

// Clear removes all cached mappings.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM mappings`); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}
