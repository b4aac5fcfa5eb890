package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Keys of the scalar values persisted across sessions.
const (
	KeyHighScore = "shooter.highscore"
	KeySettings  = "shooter.settings"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Get returns the raw value stored under key.
func (s *Store) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}
	return value, nil
}

// Put stores value under key, replacing any previous value.
func (s *Store) Put(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", key, err)
	}
	return nil
}

// LoadHighScore returns the persisted high score. A missing key is 0; a value
// that is not a base-10 integer is an error.
func (s *Store) LoadHighScore() (int, error) {
	raw, err := s.Get(KeyHighScore)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("storage: malformed high score %q: %w", raw, err)
	}
	return v, nil
}

// SaveHighScore persists the high score as base-10 text.
func (s *Store) SaveHighScore(score int) error {
	return s.Put(KeyHighScore, []byte(strconv.Itoa(score)))
}

// LoadSettings returns the opaque settings blob, or nil when none is saved.
func (s *Store) LoadSettings() ([]byte, error) {
	raw, err := s.Get(KeySettings)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return raw, err
}

// SaveSettings stores the opaque settings blob.
func (s *Store) SaveSettings(blob []byte) error {
	return s.Put(KeySettings, blob)
}
