package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"
)

var placeholderPattern = regexp.MustCompile(`\$\d+`)

// StorageRepository is the durable key/value area of the portal. Queries are
// written with postgres placeholders and rebound for sqlite.
type StorageRepository struct {
	DB     *sql.DB
	Driver string
}

func NewStorageRepository(db *sql.DB, driver string) *StorageRepository {
	return &StorageRepository{DB: db, Driver: driver}
}

func (r *StorageRepository) rebind(query string) string {
	if r.Driver == "postgres" {
		return query
	}
	return placeholderPattern.ReplaceAllString(query, "?")
}

// Get returns the stored value and whether the key exists.
func (r *StorageRepository) Get(key string) (string, bool, error) {
	var value string
	err := r.DB.QueryRow(r.rebind(`SELECT storage_value FROM client_storage WHERE storage_key = $1`), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("error reading storage key %s: %w", key, err)
	}
	return value, true, nil
}

func (r *StorageRepository) Set(key, value string) error {
	query := `
		INSERT INTO client_storage (storage_key, storage_value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (storage_key) DO UPDATE
		SET storage_value = excluded.storage_value, updated_at = excluded.updated_at`
	if _, err := r.DB.Exec(r.rebind(query), key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("error writing storage key %s: %w", key, err)
	}
	return nil
}

func (r *StorageRepository) Remove(key string) error {
	if _, err := r.DB.Exec(r.rebind(`DELETE FROM client_storage WHERE storage_key = $1`), key); err != nil {
		return fmt.Errorf("error removing storage key %s: %w", key, err)
	}
	return nil
}

func (r *StorageRepository) Clear() error {
	if _, err := r.DB.Exec(`DELETE FROM client_storage`); err != nil {
		return fmt.Errorf("error clearing storage: %w", err)
	}
	return nil
}

func (r *StorageRepository) Keys() ([]string, error) {
	rows, err := r.DB.Query(`SELECT storage_key FROM client_storage ORDER BY storage_key`)
	if err != nil {
		return nil, fmt.Errorf("error listing storage keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
