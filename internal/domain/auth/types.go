package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// DefaultRole is assigned when an account carries no explicit role.
const DefaultRole = RoleUser

// NormalizeRole maps an empty role string to the default role.
func NormalizeRole(role string) Role {
	if role == "" {
		return DefaultRole
	}
	return Role(role)
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier (e.g., random URL-safe string).
// It carries a read-only projection of the account, without the credential,
// and is not refreshed from storage until the user logs in again.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userid"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	DepartID  *string   `json:"departid"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin returns true if the session role is admin.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }
