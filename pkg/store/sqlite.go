package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Current schema version
const SchemaVersion = "1"

const driverName = "sqlite"

// SQLite is a SQLite-backed store.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLite creates a new SQLite store at the given path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			ts TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS bindings (
			run_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			value INTEGER NOT NULL,
			PRIMARY KEY (run_id, position),
			FOREIGN KEY (run_id) REFERENCES runs(id)
		);
		CREATE TABLE IF NOT EXISTS diagnostics (
			run_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			kind TEXT NOT NULL,
			line INTEGER NOT NULL,
			name TEXT NOT NULL,
			message TEXT NOT NULL,
			PRIMARY KEY (run_id, position),
			FOREIGN KEY (run_id) REFERENCES runs(id)
		);
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLite{db: db}

	var version string
	err = db.QueryRow("SELECT value FROM metadata WHERE key = 'schema_version'").Scan(&version)
	switch {
	case err == sql.ErrNoRows:
		if _, err := db.Exec("INSERT INTO metadata (key, value) VALUES ('schema_version', ?)", SchemaVersion); err != nil {
			db.Close()
			return nil, err
		}
	case err != nil:
		db.Close()
		return nil, err
	case version != SchemaVersion:
		db.Close()
		return nil, fmt.Errorf("unsupported schema version: %s (expected %s)", version, SchemaVersion)
	}

	return s, nil
}

// SaveRun stores a run with its bindings and diagnostics in one transaction.
func (s *SQLite) SaveRun(run *Run) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec("INSERT INTO runs (source, ts) VALUES (?, ?)",
		run.Source, run.Timestamp.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i, b := range run.Bindings {
		if _, err := tx.Exec("INSERT INTO bindings (run_id, position, name, value) VALUES (?, ?, ?, ?)",
			id, i, b.Name, int64(b.Value)); err != nil {
			return 0, err
		}
	}

	for i, d := range run.Diagnostics {
		if _, err := tx.Exec("INSERT INTO diagnostics (run_id, position, kind, line, name, message) VALUES (?, ?, ?, ?, ?, ?)",
			id, i, d.Kind, d.Line, d.Name, d.Message); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return id, nil
}

// GetRun retrieves a run by ID.
func (s *SQLite) GetRun(id int64) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getRunUnlocked("SELECT id, source, ts FROM runs WHERE id = ?", id)
}

// LastRun retrieves the most recent run of source.
func (s *SQLite) LastRun(source string) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getRunUnlocked("SELECT id, source, ts FROM runs WHERE source = ? ORDER BY id DESC LIMIT 1", source)
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// getRunUnlocked loads the run selected by query (caller must hold lock).
func (s *SQLite) getRunUnlocked(query string, arg any) (*Run, error) {
	var run Run
	var ts string

	err := s.db.QueryRow(query, arg).Scan(&run.ID, &run.Source, &ts)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if run.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
		return nil, fmt.Errorf("run %d: bad timestamp: %w", run.ID, err)
	}

	if run.Bindings, err = s.bindingsUnlocked(run.ID); err != nil {
		return nil, err
	}
	if run.Diagnostics, err = s.diagnosticsUnlocked(run.ID); err != nil {
		return nil, err
	}

	return &run, nil
}

func (s *SQLite) bindingsUnlocked(id int64) ([]Binding, error) {
	rows, err := s.db.Query("SELECT name, value FROM bindings WHERE run_id = ? ORDER BY position", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bindings []Binding
	for rows.Next() {
		var b Binding
		var v int64
		if err := rows.Scan(&b.Name, &v); err != nil {
			return nil, err
		}
		b.Value = uint32(v)
		bindings = append(bindings, b)
	}
	return bindings, rows.Err()
}

func (s *SQLite) diagnosticsUnlocked(id int64) ([]Diagnostic, error) {
	rows, err := s.db.Query("SELECT kind, line, name, message FROM diagnostics WHERE run_id = ? ORDER BY position", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var diags []Diagnostic
	for rows.Next() {
		var d Diagnostic
		if err := rows.Scan(&d.Kind, &d.Line, &d.Name, &d.Message); err != nil {
			return nil, err
		}
		diags = append(diags, d)
	}
	return diags, rows.Err()
}
