package store

import (
	"context"
	"testing"

	"github.com/erazemk/sickfits/internal/db"
	"github.com/erazemk/sickfits/internal/model"
)

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner, _ := CreateUser(ctx, database, "Wes", "wes@example.com", "hash", model.DefaultPermissions)

	item, err := CreateItem(ctx, database, &model.Item{
		Title:       "Shoes",
		Description: "Nice shoes",
		Price:       5000,
		Image:       "shoes.jpg",
		LargeImage:  "shoes-large.jpg",
		UserID:      owner.ID,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Title != "Shoes" {
		t.Errorf("expected title 'Shoes', got %q", item.Title)
	}
	if item.Price != 5000 {
		t.Errorf("expected price 5000, got %d", item.Price)
	}
	if item.UserID != owner.ID {
		t.Errorf("expected owner %d, got %d", owner.ID, item.UserID)
	}

	got, err := GetItem(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got.LargeImage != "shoes-large.jpg" {
		t.Errorf("expected large image, got %q", got.LargeImage)
	}

	missing, err := GetItem(ctx, database, 999)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing item")
	}
}

func TestCreateItemWithoutOwner(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, &model.Item{Title: "Hat", Description: "A hat", Price: 100})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.UserID != 0 {
		t.Errorf("expected no owner, got %d", item.UserID)
	}
	if item.Image != "" {
		t.Errorf("expected empty image, got %q", item.Image)
	}
}

func TestListItemsPagination(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	for _, title := range []string{"a", "b", "c", "d", "e", "f"} {
		if _, err := CreateItem(ctx, database, &model.Item{Title: title, Description: title, Price: 1}); err != nil {
			t.Fatalf("CreateItem: %v", err)
		}
	}

	page, err := ListItems(ctx, database, 0, 0)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(page) != DefaultPageSize {
		t.Fatalf("expected %d items, got %d", DefaultPageSize, len(page))
	}
	// Same timestamp resolution, so ties break on id: newest first.
	if page[0].Title != "f" {
		t.Errorf("expected newest item first, got %q", page[0].Title)
	}

	rest, _ := ListItems(ctx, database, 4, 4)
	if len(rest) != 2 {
		t.Errorf("expected 2 items on second page, got %d", len(rest))
	}

	count, err := CountItems(ctx, database)
	if err != nil {
		t.Fatalf("CountItems: %v", err)
	}
	if count != 6 {
		t.Errorf("expected 6 items, got %d", count)
	}
}

func TestUpdateItemPartial(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, &model.Item{Title: "Old", Description: "Keep me", Price: 10})

	title := "New"
	ok, err := UpdateItem(ctx, database, item.ID, model.ItemUpdate{Title: &title})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if !ok {
		t.Fatal("expected update to match a row")
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.ID != item.ID {
		t.Errorf("id changed: %d -> %d", item.ID, got.ID)
	}
	if got.Title != "New" {
		t.Errorf("expected title 'New', got %q", got.Title)
	}
	if got.Description != "Keep me" {
		t.Errorf("expected description untouched, got %q", got.Description)
	}
	if got.Price != 10 {
		t.Errorf("expected price untouched, got %d", got.Price)
	}
}

func TestUpdateMissingItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	title := "Ghost"
	ok, err := UpdateItem(ctx, database, 42, model.ItemUpdate{Title: &title})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if ok {
		t.Error("expected no row to match")
	}

	ok, err = UpdateItem(ctx, database, 42, model.ItemUpdate{})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if ok {
		t.Error("expected empty update on missing item to report no match")
	}
}

func TestDeleteItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, &model.Item{Title: "Delete Me", Description: "x", Price: 1})
	if err := DeleteItem(ctx, database, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got != nil {
		t.Error("expected item to be gone")
	}
}
