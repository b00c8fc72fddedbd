package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
)

// GetOrCreateSetting returns the value stored under key, storing the result
// of generate first if the key is absent. INSERT OR IGNORE followed by a
// re-SELECT keeps concurrent first runs consistent.
func GetOrCreateSetting(ctx context.Context, db *sql.DB, key string, generate func() (string, error)) (string, error) {
	candidate, err := generate()
	if err != nil {
		return "", fmt.Errorf("generating %s: %w", key, err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`,
		key, candidate,
	)
	if err != nil {
		return "", fmt.Errorf("storing %s: %w", key, err)
	}

	var value string
	err = db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("querying %s: %w", key, err)
	}

	return value, nil
}

// GetJWTSecret returns the persisted signing secret, generating one on first use.
func GetJWTSecret(ctx context.Context, db *sql.DB) (string, error) {
	return GetOrCreateSetting(ctx, db, "jwt_secret", func() (string, error) {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		return hex.EncodeToString(buf), nil
	})
}
