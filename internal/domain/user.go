package domain

import "time"

// User represents a user account in the system.
type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	Username          string    `json:"username"`
	FullName          string    `json:"full_name"`
	PasswordHash      string    `json:"-"`
	Role              string    `json:"role"`
	IsConfirmed       bool      `json:"is_confirmed"`
	ConfirmationToken *string   `json:"-"`
	ResetToken        *string   `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ValidRoles contains all valid user roles.
var ValidRoles = []string{"user", "editor", "admin"}

// IsValidRole checks if a role is valid.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// CanEdit reports whether the user may edit, publish, preview or delete the
// given tutorial: its author always can, editors and admins can edit any.
func (u *User) CanEdit(t *Tutorial) bool {
	if u == nil || t == nil {
		return false
	}
	return u.ID == t.AuthorID || u.Role == "editor" || u.Role == "admin"
}
