package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
)

// SQLitePrefs keeps prefs in a single-table SQLite database.
type SQLitePrefs struct {
	db *sql.DB
}

// OpenSQLitePrefs opens (creating if needed) the database at path.
func OpenSQLitePrefs(path string) (*SQLitePrefs, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open prefs database: %w", err)
	}

	p := &SQLitePrefs{db: db}
	if err := p.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize prefs schema: %w", err)
	}
	return p, nil
}

func (p *SQLitePrefs) initSchema() error {
	_, err := p.db.Exec(`
		CREATE TABLE IF NOT EXISTS prefs (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

func (p *SQLitePrefs) HasKey(key string) (bool, error) {
	var n int
	if err := p.db.QueryRow(`SELECT COUNT(*) FROM prefs WHERE key = ?`, key).Scan(&n); err != nil {
		return false, fmt.Errorf("checking key %s: %w", key, err)
	}
	return n > 0, nil
}

func (p *SQLitePrefs) GetString(key string) (string, error) {
	var value string
	err := p.db.QueryRow(`SELECT value FROM prefs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", key, ErrKeyNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("reading key %s: %w", key, err)
	}
	return value, nil
}

func (p *SQLitePrefs) SetString(key, value string) error {
	_, err := p.db.Exec(`
		INSERT INTO prefs (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("writing key %s: %w", key, err)
	}
	return nil
}

func (p *SQLitePrefs) GetBool(key string) (bool, error) {
	s, err := p.GetString(key)
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("key %s is not a bool: %w", key, err)
	}
	return b, nil
}

func (p *SQLitePrefs) SetBool(key string, value bool) error {
	return p.SetString(key, strconv.FormatBool(value))
}

func (p *SQLitePrefs) DeleteKey(key string) error {
	if _, err := p.db.Exec(`DELETE FROM prefs WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting key %s: %w", key, err)
	}
	return nil
}

func (p *SQLitePrefs) Close() error {
	return p.db.Close()
}
