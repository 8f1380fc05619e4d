package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// Store holds the two durable credential slots. Read once at startup,
// written on login/refresh, cleared on logout.
type Store interface {
	Load() (access, refresh string, err error)
	Save(access, refresh string) error
	Clear() error
}

const (
	slotAccess  = "access_token"
	slotRefresh = "refresh_token"
)

// FileStore persists the slots in an embedded sqlite file next to the
// client. The database stores nothing but credentials.
type FileStore struct {
	db *sql.DB
}

// OpenFileStore opens (or creates) the credential database at path.
func OpenFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	const ddl = `CREATE TABLE IF NOT EXISTS credentials (
		slot  TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create credentials table: %w", err)
	}
	return &FileStore{db: db}, nil
}

func (s *FileStore) Load() (string, string, error) {
	rows, err := s.db.Query("SELECT slot, value FROM credentials")
	if err != nil {
		return "", "", err
	}
	defer rows.Close()

	var access, refresh string
	for rows.Next() {
		var slot, value string
		if err := rows.Scan(&slot, &value); err != nil {
			return "", "", err
		}
		switch slot {
		case slotAccess:
			access = value
		case slotRefresh:
			refresh = value
		}
	}
	return access, refresh, rows.Err()
}

func (s *FileStore) Save(access, refresh string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	const upsert = `INSERT INTO credentials (slot, value) VALUES (?, ?)
		ON CONFLICT(slot) DO UPDATE SET value = excluded.value`
	for slot, value := range map[string]string{slotAccess: access, slotRefresh: refresh} {
		if _, err := tx.Exec(upsert, slot, value); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *FileStore) Clear() error {
	_, err := s.db.Exec("DELETE FROM credentials")
	return err
}

// DB exposes the handle for readiness probes.
func (s *FileStore) DB() *sql.DB { return s.db }

func (s *FileStore) Close() error { return s.db.Close() }

// MemStore keeps the slots in memory. Used by tests and by callers that
// explicitly opt out of persistence.
type MemStore struct {
	mu      sync.Mutex
	access  string
	refresh string
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Load() (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access, s.refresh, nil
}

func (s *MemStore) Save(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = access, refresh
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = "", ""
	return nil
}
