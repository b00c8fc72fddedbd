package model

import "time"

// Item is a product listed for sale. Price is in cents.
type Item struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int       `json:"price"`
	Image       string    `json:"image,omitempty"`
	LargeImage  string    `json:"largeImage,omitempty"`
	UserID      int64     `json:"userId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ItemUpdate holds the replaceable fields of an item. Nil fields are left
// untouched. The row is selected by id separately, so the id can never be
// written through an update.
type ItemUpdate struct {
	Title       *string
	Description *string
	Price       *int
	Image       *string
	LargeImage  *string
}

// Column is a single column assignment in an UPDATE statement.
type Column struct {
	Name  string
	Value any
}

// Columns returns the assignments for the non-nil fields, in a stable order.
func (u ItemUpdate) Columns() []Column {
	var cols []Column
	if u.Title != nil {
		cols = append(cols, Column{"title", *u.Title})
	}
	if u.Description != nil {
		cols = append(cols, Column{"description", *u.Description})
	}
	if u.Price != nil {
		cols = append(cols, Column{"price", *u.Price})
	}
	if u.Image != nil {
		cols = append(cols, Column{"image", *u.Image})
	}
	if u.LargeImage != nil {
		cols = append(cols, Column{"large_image", *u.LargeImage})
	}
	return cols
}

// Empty reports whether the update changes nothing.
func (u ItemUpdate) Empty() bool {
	return len(u.Columns()) == 0
}
