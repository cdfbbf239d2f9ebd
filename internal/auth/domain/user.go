package domain

import "time"

// Role is the closed set of authorization roles a user can hold. It is
// embedded in token claims and drives authorization downstream.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// User is the account record as the store returns it. PasswordHash never
// leaves the process; external responses use UserView.
type User struct {
	ID           string
	Email        string // exact-match key, uniqueness enforced by the store
	FirstName    string
	LastName     string
	PasswordHash string // bcrypt encoded
	Role         Role
	Active       bool // inactive accounts fail every authentication path
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserView is the redacted projection of a User that is safe to expose.
type UserView struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
}

// Redacted strips the password hash and audit fields for external exposure.
func (u User) Redacted() UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}
