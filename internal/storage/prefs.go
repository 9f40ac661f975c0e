package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// Prefs is an integer key/value store scoped to one owner, so players on a
// shared server keep separate high scores. Missing keys read as zero.
type Prefs struct {
	store *Store
	owner string
}

// Prefs returns the pref store of owner. The empty owner is the local player.
func (s *Store) Prefs(owner string) *Prefs {
	return &Prefs{store: s, owner: owner}
}

// SetInt stores value under key, replacing any previous value.
func (p *Prefs) SetInt(key string, value int) error {
	_, err := p.store.db.Exec(
		`INSERT INTO prefs (owner, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(owner, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		p.owner, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save pref %s: %w", key, err)
	}
	return nil
}

// Int returns the value stored under key, or 0 if the key was never set.
func (p *Prefs) Int(key string) (int, error) {
	var value int
	err := p.store.db.QueryRow(
		"SELECT value FROM prefs WHERE owner = ? AND key = ?",
		p.owner, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load pref %s: %w", key, err)
	}
	return value, nil
}
