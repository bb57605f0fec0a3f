// Package store persists a flattened word tree in a SQLite database so the
// index can be rebuilt without re-reading the source wordlist.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"fuzzydex/bktree"
)

// Store handles persistence of the indexed word tree.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open opens (or creates) the database at dbPath and applies migrations.
func Open(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Current schema version
const schemaVersion = 2

// migrations defines all schema migrations.
// Each migration should be idempotent (safe to run multiple times).
var migrations = []struct {
	version     int
	description string
	up          string
}{
	{
		version:     1,
		description: "Initial schema",
		up:          "", // Handled by base schema creation
	},
	{
		version:     2,
		description: "Index edges by parent for ordered reload",
		up: `
			CREATE INDEX IF NOT EXISTS idx_edges_parent ON edges(parent_id, ord);
		`,
	},
}

// init creates the database schema and runs pending migrations.
func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// nodes.id is the node's arena index (root = 0); edges keep their
	// insertion order in ord so the reloaded tree has the exact original
	// shape.
	schema := `
	CREATE TABLE IF NOT EXISTS nodes (
		id INTEGER PRIMARY KEY,
		word TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS edges (
		parent_id INTEGER NOT NULL,
		ord INTEGER NOT NULL,
		dist INTEGER NOT NULL,
		child_id INTEGER NOT NULL,
		PRIMARY KEY (parent_id, ord)
	);

	CREATE TABLE IF NOT EXISTS index_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		indexed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		total_words INTEGER NOT NULL
	);
	`

	if _, err = s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := s.migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// migrate applies any migrations newer than the recorded schema version.
func (s *Store) migrate() error {
	var current int
	err := s.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if m.up != "" {
			if _, err := s.db.Exec(m.up); err != nil {
				return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.description, err)
			}
		}
		if _, err := s.db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, m.version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.version, err)
		}
	}

	return nil
}

// SaveTree replaces the stored tree with the given flattened form.
// The write is transactional: a failed save leaves the previous tree intact.
func (s *Store) SaveTree(flat []bktree.FlatNode[string]) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM edges`); err != nil {
		return fmt.Errorf("failed to clear edges: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM nodes`); err != nil {
		return fmt.Errorf("failed to clear nodes: %w", err)
	}

	insertNode, err := tx.Prepare(`INSERT INTO nodes (id, word) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare node insert: %w", err)
	}
	defer insertNode.Close()

	insertEdge, err := tx.Prepare(`INSERT INTO edges (parent_id, ord, dist, child_id) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare edge insert: %w", err)
	}
	defer insertEdge.Close()

	for id, node := range flat {
		if _, err := insertNode.Exec(id, node.Item); err != nil {
			return fmt.Errorf("failed to insert node %d: %w", id, err)
		}
		for ord, e := range node.Edges {
			if _, err := insertEdge.Exec(id, ord, e.Dist, e.Child); err != nil {
				return fmt.Errorf("failed to insert edge %d/%d: %w", id, ord, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// LoadTree reads the stored tree back in flattened form. An empty database
// yields a nil slice, matching Flatten on an empty tree.
func (s *Store) LoadTree() ([]bktree.FlatNode[string], error) {
	rows, err := s.db.Query(`SELECT id, word FROM nodes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	defer rows.Close()

	var flat []bktree.FlatNode[string]
	for rows.Next() {
		var id int
		var word string
		if err := rows.Scan(&id, &word); err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		if id != len(flat) {
			return nil, fmt.Errorf("corrupt tree: node ids not contiguous at %d", id)
		}
		flat = append(flat, bktree.FlatNode[string]{Item: word})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read nodes: %w", err)
	}

	edgeRows, err := s.db.Query(`SELECT parent_id, dist, child_id FROM edges ORDER BY parent_id, ord`)
	if err != nil {
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer edgeRows.Close()

	for edgeRows.Next() {
		var parent, dist, child int
		if err := edgeRows.Scan(&parent, &dist, &child); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		if parent < 0 || parent >= len(flat) || child <= 0 || child >= len(flat) {
			return nil, fmt.Errorf("corrupt tree: edge %d -> %d out of range", parent, child)
		}
		flat[parent].Edges = append(flat[parent].Edges, bktree.FlatEdge{Dist: dist, Child: child})
	}
	if err := edgeRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read edges: %w", err)
	}

	return flat, nil
}

// WordCount returns the number of stored words.
func (s *Store) WordCount() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM nodes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count nodes: %w", err)
	}
	return n, nil
}

// RecordIndex logs an indexing run.
func (s *Store) RecordIndex(source string, totalWords int) error {
	_, err := s.db.Exec(
		`INSERT INTO index_history (source, total_words) VALUES (?, ?)`,
		source, totalWords,
	)
	if err != nil {
		return fmt.Errorf("failed to record index run: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
