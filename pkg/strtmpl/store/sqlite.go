package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists definitions to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore opens (or creates) a SQLite definition store.
// The path should be a file path (e.g., "./templates.db") or ":memory:".
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS definitions (
			name TEXT PRIMARY KEY,
			id TEXT NOT NULL,
			version INTEGER NOT NULL,
			timestamp TEXT NOT NULL,
			data BLOB NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(name string, data []byte) (Info, error) {
	if name == "" {
		return Info{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Info{}, ErrStoreClosed
	}

	now := time.Now().UTC()
	if data == nil {
		data = []byte{}
	}

	// id is kept and version bumped when the name already exists
	var info Info
	var timestamp string
	err := s.db.QueryRow(`
		INSERT INTO definitions (name, id, version, timestamp, data)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			version = definitions.version + 1,
			timestamp = excluded.timestamp,
			data = excluded.data
		RETURNING id, version, timestamp, LENGTH(data)
	`, name, uuid.NewString(), now.Format(time.RFC3339Nano), data).
		Scan(&info.ID, &info.Version, &timestamp, &info.Size)
	if err != nil {
		return Info{}, fmt.Errorf("save definition: %w", err)
	}

	info.Name = name
	if info.Timestamp, err = time.Parse(time.RFC3339Nano, timestamp); err != nil {
		return Info{}, fmt.Errorf("save definition %q: parse timestamp: %w", name, err)
	}
	return info, nil
}

// Load implements Store.
func (s *SQLiteStore) Load(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	var data []byte
	err := s.db.QueryRow(`
		SELECT data FROM definitions WHERE name = ?
	`, name).Scan(&data)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load definition: %w", err)
	}
	return data, nil
}

// Stat implements Store.
func (s *SQLiteStore) Stat(name string) (Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Info{}, ErrStoreClosed
	}

	row := s.db.QueryRow(`
		SELECT name, id, version, timestamp, LENGTH(data)
		FROM definitions WHERE name = ?
	`, name)

	info, err := scanInfo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Info{}, ErrNotFound
	}
	if err != nil {
		return Info{}, fmt.Errorf("stat definition: %w", err)
	}
	return info, nil
}

// List implements Store.
func (s *SQLiteStore) List() ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT name, id, version, timestamp, LENGTH(data)
		FROM definitions
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}
	defer rows.Close()

	infos := []Info{}
	for rows.Next() {
		info, err := scanInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan definition info: %w", err)
		}
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate definitions: %w", err)
	}
	return infos, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInfo(row scanner) (Info, error) {
	var info Info
	var timestamp string
	if err := row.Scan(&info.Name, &info.ID, &info.Version, &timestamp, &info.Size); err != nil {
		return Info{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return Info{}, fmt.Errorf("definition %q: parse timestamp: %w", info.Name, err)
	}
	info.Timestamp = ts
	return info, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`DELETE FROM definitions WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete definition: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
