package model

import "testing"

func TestItemUpdateColumns(t *testing.T) {
	title := "Shoes"
	price := 5000

	u := ItemUpdate{Title: &title, Price: &price}
	cols := u.Columns()
	if len(cols) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(cols))
	}
	if cols[0].Name != "title" || cols[0].Value != "Shoes" {
		t.Errorf("unexpected first column: %+v", cols[0])
	}
	if cols[1].Name != "price" || cols[1].Value != 5000 {
		t.Errorf("unexpected second column: %+v", cols[1])
	}
	for _, c := range cols {
		if c.Name == "id" {
			t.Error("id must never be part of an update")
		}
	}
}

func TestItemUpdateEmpty(t *testing.T) {
	if !(ItemUpdate{}).Empty() {
		t.Error("expected zero update to be empty")
	}
	img := ""
	if (ItemUpdate{Image: &img}).Empty() {
		t.Error("clearing the image is still an update")
	}
}
