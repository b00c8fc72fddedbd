package model

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// User is a storefront account.
type User struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	Permissions      []string   `json:"permissions"`
	ResetToken       string     `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// Permissions.
const (
	PermissionAdmin            = "ADMIN"
	PermissionUser             = "USER"
	PermissionItemCreate       = "ITEMCREATE"
	PermissionItemUpdate       = "ITEMUPDATE"
	PermissionItemDelete       = "ITEMDELETE"
	PermissionPermissionUpdate = "PERMISSIONUPDATE"
)

// DefaultPermissions are granted to every new account.
var DefaultPermissions = []string{PermissionUser}

// ValidPermission reports whether p is a known permission.
func ValidPermission(p string) bool {
	switch p {
	case PermissionAdmin, PermissionUser, PermissionItemCreate,
		PermissionItemUpdate, PermissionItemDelete, PermissionPermissionUpdate:
		return true
	}
	return false
}

// HasAnyPermission reports whether the user holds at least one of the given
// permissions.
func (u *User) HasAnyPermission(perms ...string) bool {
	if u == nil {
		return false
	}
	for _, p := range perms {
		if slices.Contains(u.Permissions, p) {
			return true
		}
	}
	return false
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// JoinPermissions encodes a permission set for storage.
func JoinPermissions(perms []string) string {
	return strings.Join(perms, ",")
}

// SplitPermissions decodes a stored permission set.
func SplitPermissions(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

// ValidatePassword checks minimal password requirements.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}
