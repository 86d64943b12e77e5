package domain

import (
	"strings"
	"time"
)

// Role is the closed set of account roles. The zero value is not a valid role.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleWriter    Role = "writer"
	RoleViewer    Role = "viewer"
)

// DefaultRole is assigned to every self-registered account.
const DefaultRole = RoleViewer

// Roles lists every valid role from most to least privileged.
var Roles = []Role{RoleAdmin, RoleModerator, RoleWriter, RoleViewer}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleWriter, RoleViewer:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole converts raw input into a Role. Surrounding whitespace and case are ignored.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", NewValidationError().
			Add("role", "must be one of: admin, moderator, writer, viewer").
			Err()
	}
	return r, nil
}

// User models an account able to authenticate against the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Active       bool      `json:"is_active"`
	CreatedAt    time.Time `json:"date_joined"`
	UpdatedAt    time.Time `json:"updated_at"`
}
