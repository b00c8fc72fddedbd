package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/erazemk/sickfits/internal/db"
	"github.com/erazemk/sickfits/internal/model"
)

func TestCreateAndGetUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, "Wes", "wes@example.com", "hash123", model.DefaultPermissions)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Email != "wes@example.com" {
		t.Errorf("expected email 'wes@example.com', got %q", user.Email)
	}
	if len(user.Permissions) != 1 || user.Permissions[0] != model.PermissionUser {
		t.Errorf("expected [USER], got %v", user.Permissions)
	}

	got, err := GetUser(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Name != "Wes" {
		t.Errorf("expected name 'Wes', got %q", got.Name)
	}
	if got.ResetTokenExpiry != nil {
		t.Error("expected no reset token expiry")
	}
}

func TestGetUserByEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateUser(ctx, database, "Alice", "alice@example.com", "hash", model.DefaultPermissions)

	user, err := GetUserByEmail(ctx, database, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}

	missing, err := GetUserByEmail(ctx, database, "bob@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing user")
	}
}

func TestDuplicateEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, database, "A", "dup@example.com", "hash", model.DefaultPermissions); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	_, err := CreateUser(ctx, database, "B", "dup@example.com", "hash", model.DefaultPermissions)
	if err == nil {
		t.Fatal("expected unique constraint error")
	}
	if !strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestResetTokenLifecycle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "Reset", "reset@example.com", "oldhash", model.DefaultPermissions)
	issued := time.Now()
	if err := SetResetToken(ctx, database, user.ID, "abc123", issued.Add(time.Hour)); err != nil {
		t.Fatalf("SetResetToken: %v", err)
	}

	got, err := GetUserByResetToken(ctx, database, "abc123", issued.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("GetUserByResetToken: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Fatal("expected token to resolve within the window")
	}

	expired, _ := GetUserByResetToken(ctx, database, "abc123", issued.Add(61*time.Minute))
	if expired != nil {
		t.Error("expected expired token to be rejected")
	}

	wrong, _ := GetUserByResetToken(ctx, database, "nope", issued)
	if wrong != nil {
		t.Error("expected unknown token to be rejected")
	}

	if err := ResetPassword(ctx, database, user.ID, "newhash"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	after, _ := GetUser(ctx, database, user.ID)
	if after.PasswordHash != "newhash" {
		t.Errorf("expected password hash 'newhash', got %q", after.PasswordHash)
	}
	if after.ResetToken != "" || after.ResetTokenExpiry != nil {
		t.Error("expected reset fields to be cleared")
	}
}

func TestUpdatePermissions(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "Perm", "perm@example.com", "hash", model.DefaultPermissions)
	if err := UpdatePermissions(ctx, database, user.ID, []string{model.PermissionUser, model.PermissionAdmin}); err != nil {
		t.Fatalf("UpdatePermissions: %v", err)
	}

	got, _ := GetUser(ctx, database, user.ID)
	if !got.HasAnyPermission(model.PermissionAdmin) {
		t.Errorf("expected ADMIN, got %v", got.Permissions)
	}
}

func TestListUsers(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateUser(ctx, database, "Zed", "zed@example.com", "hash", model.DefaultPermissions)
	CreateUser(ctx, database, "Amy", "amy@example.com", "hash", model.DefaultPermissions)

	users, err := ListUsers(ctx, database)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 || users[0].Name != "Amy" {
		t.Errorf("expected users ordered by name, got %+v", users)
	}
}
