// Package storage handles SQLite persistence for the collection.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// queries implements all reads and writes against either a live transaction
// or the bare connection.
type queries struct {
	q querier
}

// Store is the SQLite-backed collection store.
type Store struct {
	db *sql.DB
	queries
}

// Tx exposes the store's operations inside an open transaction.
type Tx struct {
	queries
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS col (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS notetypes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	mtime_secs INTEGER NOT NULL DEFAULT 0,
	usn INTEGER NOT NULL DEFAULT 0,
	config TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notetypes_name ON notetypes(name);

CREATE TABLE IF NOT EXISTS fields (
	ntid INTEGER NOT NULL,
	ord INTEGER NOT NULL,
	name TEXT NOT NULL,
	config TEXT NOT NULL,
	PRIMARY KEY (ntid, ord)
);

CREATE TABLE IF NOT EXISTS templates (
	ntid INTEGER NOT NULL,
	ord INTEGER NOT NULL,
	name TEXT NOT NULL,
	config TEXT NOT NULL,
	PRIMARY KEY (ntid, ord)
);

CREATE TABLE IF NOT EXISTS notes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ntid INTEGER NOT NULL,
	fields TEXT NOT NULL,
	sort_field TEXT NOT NULL DEFAULT '',
	mtime_secs INTEGER NOT NULL DEFAULT 0,
	usn INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_notes_ntid ON notes(ntid);

CREATE TABLE IF NOT EXISTS cards (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	note_id INTEGER NOT NULL,
	ord INTEGER NOT NULL,
	deck_id INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_cards_note ON cards(note_id);
`

// Open opens or creates the collection database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create collection directory: %w", err)
		}
	}
	return open(path)
}

// OpenInMemory opens an in-memory store, used by tests.
func OpenInMemory() (*Store, error) {
	return open(":memory:")
}

func open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// modernc's driver serializes per connection; a single connection keeps
	// in-memory databases and transactions coherent.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, queries: queries{q: db}}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Transact runs fn inside a transaction, rolling back on error.
func (s *Store) Transact(fn func(tx *Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Tx{queries: queries{q: tx}}); err != nil {
		return err
	}
	return tx.Commit()
}
