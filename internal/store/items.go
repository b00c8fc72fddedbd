package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/erazemk/sickfits/internal/model"
)

const itemColumns = `id, title, description, price, image, large_image, user_id, created_at, updated_at`

// DefaultPageSize is the number of items shown per storefront page.
const DefaultPageSize = 4

// CreateItem creates a new item. ID and timestamps of the argument are ignored.
func CreateItem(ctx context.Context, db *sql.DB, item *model.Item) (*model.Item, error) {
	var userID sql.NullInt64
	if item.UserID != 0 {
		userID = sql.NullInt64{Int64: item.UserID, Valid: true}
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO items (title, description, price, image, large_image, user_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.Title, item.Description, item.Price, nullString(item.Image), nullString(item.LargeImage), userID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	row := db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns a page of items, newest first. A non-positive first
// means DefaultPageSize.
func ListItems(ctx context.Context, db *sql.DB, skip, first int) ([]model.Item, error) {
	if first <= 0 {
		first = DefaultPageSize
	}
	if skip < 0 {
		skip = 0
	}

	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		first, skip,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// CountItems returns the total number of items.
func CountItems(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return count, nil
}

// UpdateItem writes the non-nil fields of upd to the item with the given id.
// It reports whether a row matched.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, upd model.ItemUpdate) (bool, error) {
	cols := upd.Columns()
	if len(cols) == 0 {
		item, err := GetItem(ctx, db, id)
		return item != nil, err
	}

	sets := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+1)
	for _, c := range cols {
		sets = append(sets, c.Name+" = ?")
		args = append(args, c.Value)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	result, err := db.ExecContext(ctx,
		`UPDATE items SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...,
	)
	if err != nil {
		return false, fmt.Errorf("updating item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("updating item: %w", err)
	}
	return n > 0, nil
}

// DeleteItem removes an item.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*model.Item, error) {
	item := &model.Item{}
	var image, largeImage sql.NullString
	var userID sql.NullInt64
	if err := s.Scan(&item.ID, &item.Title, &item.Description, &item.Price,
		&image, &largeImage, &userID, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	item.Image = image.String
	item.LargeImage = largeImage.String
	item.UserID = userID.Int64
	return item, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
