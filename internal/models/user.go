package models

import "time"

// Role is the account status gating what a user may do
type Role string

// User role constants. "guest" is never stored, it is the sentinel
// returned for requests without a session.
const (
	RoleGuest   Role = "guest"
	RolePending Role = "pending"
	RoleMember  Role = "member"
	RoleAdmin   Role = "admin"
)

// User represents a user account in the system
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// RoleOf returns the role of a user, or RoleGuest for a nil user
func RoleOf(u *User) Role {
	if u == nil {
		return RoleGuest
	}
	return u.Role
}

// IsAdmin reports whether the user holds the admin role
func IsAdmin(u *User) bool {
	return RoleOf(u) == RoleAdmin
}

// SignupRequest represents a signup request body
type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents a login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents a profile update request body.
// Empty fields are left untouched.
type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileResponse represents the user data exposed to the client
type ProfileResponse struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewProfileResponse builds the client view of a user record
func NewProfileResponse(u *User) *ProfileResponse {
	return &ProfileResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
