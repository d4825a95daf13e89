// Package domain defines the entities of the recipe-sharing service.
package domain

import (
	"strings"
	"time"
)

// Role represents the user's permission level in the system.
type Role string

const (
	// RoleAdmin grants moderation rights over all recipes.
	RoleAdmin Role = "admin"
	// RoleMember grants standard user access.
	RoleMember Role = "member"
)

// User represents a registered account.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PasswordHash string   `json:"-"` // never serialized
	Role        Role      `json:"-"`
	IsSuperuser bool      `json:"-"`
	CreatedAt   time.Time `json:"-"`
}

// IsAdmin returns true if the user may mutate other users' recipes.
// Superusers are admins regardless of their role field.
func (u *User) IsAdmin() bool {
	return u.IsSuperuser || u.Role == RoleAdmin
}

// FullName returns the user's full name.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// reservedUsernames are route segments that would shadow API endpoints.
var reservedUsernames = map[string]bool{
	"me":            true,
	"set_password":  true,
	"subscriptions": true,
}

// ValidateUsername rejects usernames that collide with user API routes.
// Format constraints (length, charset) are handled by request validation;
// this guards only the reserved words.
func ValidateUsername(username string) bool {
	return !reservedUsernames[strings.ToLower(username)]
}
