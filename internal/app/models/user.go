package models

import (
	"slices"
	"time"
)

// RoleName is the unique name of a role
type RoleName string

const (
	RoleAdmin RoleName = "admin"
	RoleUser  RoleName = "user"
)

// Role defines the role model based on the 'roles' table
type Role struct {
	ID          int64    `json:"id" db:"id"`
	Name        RoleName `json:"name" db:"name"`
	Description *string  `json:"description,omitempty" db:"description"`
}

// User defines the user model based on the 'users' table
type User struct {
	ID       int64  `json:"id" db:"id"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"` // bcrypt hash, never the plaintext
	FullName string `json:"fullName" db:"full_name"`
	Active   bool   `json:"active" db:"active"`
	// Uniquifier binds issued tokens to the current session generation.
	// Rotating it revokes every outstanding token of the user.
	Uniquifier string     `json:"-" db:"fs_uniquifier"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	Roles      []RoleName `json:"roles"`
}

// HasRole reports whether the user holds role
func (u *User) HasRole(role RoleName) bool {
	return slices.Contains(u.Roles, role)
}

// PrimaryRole is the lexicographically smallest assigned role, or
// RoleUser when the user holds none.
func (u *User) PrimaryRole() RoleName {
	return primaryRole(u.Roles)
}

// Identity returns the request-scoped view of the user
func (u *User) Identity() *Identity {
	return &Identity{
		UserID:     u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Active:     u.Active,
		Uniquifier: u.Uniquifier,
		Roles:      slices.Clone(u.Roles),
	}
}

// Identity is the authenticated caller attached to a request
type Identity struct {
	UserID     int64      `json:"userId"`
	Email      string     `json:"email"`
	FullName   string     `json:"fullName"`
	Active     bool       `json:"active"`
	Uniquifier string     `json:"uniquifier"`
	Roles      []RoleName `json:"roles"`
}

// HasRole reports whether the identity holds role
func (i *Identity) HasRole(role RoleName) bool {
	return slices.Contains(i.Roles, role)
}

// IsAdmin is shorthand for HasRole(RoleAdmin)
func (i *Identity) IsAdmin() bool {
	return i.HasRole(RoleAdmin)
}

// PrimaryRole follows the same rule as User.PrimaryRole
func (i *Identity) PrimaryRole() RoleName {
	return primaryRole(i.Roles)
}

func primaryRole(roles []RoleName) RoleName {
	if len(roles) == 0 {
		return RoleUser
	}
	return slices.Min(roles)
}
