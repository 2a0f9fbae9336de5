package model

import (
	"fmt"
	"strings"
	"time"
)

// User is an account that can sign in.
type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	Bio          string     `json:"bio"`
	Phone        string     `json:"phone"`
	HasAvatar    bool       `json:"has_avatar"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// Roles.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// ValidRole reports whether role is known.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStaff
}

// RoleAtLeast checks if role meets or exceeds the minimum required role.
func RoleAtLeast(role, minimum string) bool {
	levels := map[string]int{
		RoleAdmin: 2,
		RoleStaff: 1,
	}
	return levels[role] >= levels[minimum] && levels[minimum] > 0
}

// CanMutate reports whether role has full access to inventory data.
// Staff accounts are view-only.
func CanMutate(role string) bool {
	return RoleAtLeast(role, RoleAdmin)
}

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// ValidatePassword checks password strength rules.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// Initials returns up to two upper-case initials for an avatar fallback.
func (u User) Initials() string {
	parts := strings.Fields(u.Name)
	switch len(parts) {
	case 0:
		return "U"
	case 1:
		return strings.ToUpper(firstRune(parts[0]))
	default:
		return strings.ToUpper(firstRune(parts[0]) + firstRune(parts[len(parts)-1]))
	}
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
