package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite is the durable KV, one row per key.
type SQLite struct {
	db *sql.DB
}

// Open creates or opens the store under the user config dir
// (~/.config/autc/autc.db or the platform equivalent).
func Open() (*SQLite, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, herr := os.UserHomeDir()
		if herr != nil {
			return nil, err
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	dbDir := filepath.Join(configDir, "autc")
	if err := os.MkdirAll(dbDir, 0o700); err != nil {
		return nil, err
	}
	return OpenAt(filepath.Join(dbDir, "autc.db"))
}

// OpenAt opens the store at an explicit path.
func OpenAt(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	schema := `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLite) Set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO kv(key, value, updated_at) VALUES(?, ?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at",
		key,
		value,
		time.Now().Unix(),
	)
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
