package model

import "testing"

func TestHasAnyPermission(t *testing.T) {
	admin := &User{Permissions: []string{PermissionUser, PermissionAdmin}}
	plain := &User{Permissions: []string{PermissionUser}}

	tests := []struct {
		user     *User
		perms    []string
		expected bool
	}{
		{admin, []string{PermissionAdmin, PermissionItemDelete}, true},
		{admin, []string{PermissionItemDelete}, false},
		{plain, []string{PermissionAdmin, PermissionItemDelete}, false},
		{plain, []string{PermissionUser}, true},
		{plain, nil, false},
		// Nil user fails closed.
		{nil, []string{PermissionUser}, false},
	}

	for _, tt := range tests {
		got := tt.user.HasAnyPermission(tt.perms...)
		if got != tt.expected {
			t.Errorf("HasAnyPermission(%v) on %v = %v, want %v", tt.perms, tt.user, got, tt.expected)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Wes@Example.COM", "wes@example.com"},
		{"  bob@example.com ", "bob@example.com"},
		{"already@lower.com", "already@lower.com"},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPermissionsRoundTrip(t *testing.T) {
	perms := []string{PermissionUser, PermissionItemCreate}
	got := SplitPermissions(JoinPermissions(perms))
	if len(got) != 2 || got[0] != PermissionUser || got[1] != PermissionItemCreate {
		t.Errorf("unexpected permissions: %v", got)
	}
	if empty := SplitPermissions(""); len(empty) != 0 {
		t.Errorf("expected no permissions, got %v", empty)
	}
}

func TestValidPermission(t *testing.T) {
	if !ValidPermission(PermissionItemDelete) {
		t.Error("expected ITEMDELETE to be valid")
	}
	if ValidPermission("SUPERUSER") {
		t.Error("expected unknown permission to be invalid")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"", true},
		{"short", true},
		{"1234567", true},
		{"12345678", false},
		{"a-valid-password", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
		}
	}
}
