package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound error = notFoundError{}

type notFoundError struct{}

func (notFoundError) Error() string { return "storage: key not found" }

// NotFound marks the error as a missing key for callers that cannot import
// this package.
func (notFoundError) NotFound() bool { return true }

// KV is a per-profile document store. Values are opaque strings, usually JSON.
type KV struct {
	store   *Store
	profile string
}

// KV returns a key-value view scoped to profile.
func (s *Store) KV(profile string) *KV {
	if profile == "" {
		profile = DefaultProfile
	}
	return &KV{store: s, profile: profile}
}

// Profile returns the profile this view is scoped to.
func (kv *KV) Profile() string {
	return kv.profile
}

// Get returns the value stored under key, or ErrNotFound.
func (kv *KV) Get(key string) (string, error) {
	var value string
	err := kv.store.db.QueryRow(
		"SELECT value FROM kv WHERE profile = ? AND key = ?",
		kv.profile, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot read %s/%s: %w", kv.profile, key, err)
	}
	return value, nil
}

// Put stores value under key, replacing any previous value.
func (kv *KV) Put(key, value string) error {
	_, err := kv.store.db.Exec(
		`INSERT INTO kv (profile, key, value, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		kv.profile, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s/%s: %w", kv.profile, key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (kv *KV) Delete(key string) error {
	if _, err := kv.store.db.Exec("DELETE FROM kv WHERE profile = ? AND key = ?", kv.profile, key); err != nil {
		return fmt.Errorf("storage: cannot delete %s/%s: %w", kv.profile, key, err)
	}
	return nil
}

// Keys lists the keys stored for this profile in lexical order.
func (kv *KV) Keys() ([]string, error) {
	rows, err := kv.store.db.Query("SELECT key FROM kv WHERE profile = ? ORDER BY key", kv.profile)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("storage: cannot scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
