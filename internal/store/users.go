package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/sickfits/internal/model"
)

const userColumns = `id, name, email, password_hash, permissions, reset_token, reset_token_expiry, created_at`

// CreateUser creates a new user. The email is stored as given; callers
// normalize it first.
func CreateUser(ctx context.Context, db *sql.DB, name, email, passwordHash string, permissions []string) (*model.User, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, permissions) VALUES (?, ?, ?, ?)`,
		name, email, passwordHash, model.JoinPermissions(permissions),
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user id: %w", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID.
func GetUser(ctx context.Context, db *sql.DB, id int64) (*model.User, error) {
	u, err := scanUser(db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// GetUserByEmail returns a user by (already normalized) email.
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*model.User, error) {
	u, err := scanUser(db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return u, nil
}

// ListUsers returns all users ordered by name.
func ListUsers(ctx context.Context, db *sql.DB) ([]model.User, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// GetUserByResetToken returns the user holding token if its expiry is after now.
func GetUserByResetToken(ctx context.Context, db *sql.DB, token string, now time.Time) (*model.User, error) {
	u, err := scanUser(db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE reset_token = ? AND reset_token_expiry > ?`,
		token, now.UnixMilli(),
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by reset token: %w", err)
	}
	return u, nil
}

// SetResetToken stores a password reset token and its expiry on a user.
func SetResetToken(ctx context.Context, db *sql.DB, id int64, token string, expiry time.Time) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET reset_token = ?, reset_token_expiry = ? WHERE id = ?`,
		token, expiry.UnixMilli(), id,
	)
	if err != nil {
		return fmt.Errorf("setting reset token: %w", err)
	}
	return nil
}

// ResetPassword replaces a user's password hash and clears the reset token.
func ResetPassword(ctx context.Context, db *sql.DB, id int64, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, reset_token = NULL, reset_token_expiry = NULL WHERE id = ?`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("resetting password: %w", err)
	}
	return nil
}

// UpdatePermissions replaces a user's permission set.
func UpdatePermissions(ctx context.Context, db *sql.DB, id int64, permissions []string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET permissions = ? WHERE id = ?`,
		model.JoinPermissions(permissions), id,
	)
	if err != nil {
		return fmt.Errorf("updating permissions: %w", err)
	}
	return nil
}

func scanUser(s scanner) (*model.User, error) {
	u := &model.User{}
	var perms string
	var resetToken sql.NullString
	var resetExpiry sql.NullInt64
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &perms,
		&resetToken, &resetExpiry, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Permissions = model.SplitPermissions(perms)
	u.ResetToken = resetToken.String
	if resetExpiry.Valid {
		expiry := time.UnixMilli(resetExpiry.Int64)
		u.ResetTokenExpiry = &expiry
	}
	return u, nil
}
