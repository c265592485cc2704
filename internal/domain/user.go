package domain

import "time"

// Role is a user's access level.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// User is a system account. Passwords are stored as bcrypt hashes and never
// serialized in API responses.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Department   string    `json:"department"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SessionUser is the password-free projection of a User carried inside an
// authenticated session. The narrower type is what keeps credentials out of
// session storage; there is no runtime redaction to forget.
type SessionUser struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	Department string    `json:"department"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SessionUser strips the credential fields from a full user record.
func (u User) SessionUser() SessionUser {
	return SessionUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Department: u.Department,
		Active:     u.Active,
		CreatedAt:  u.CreatedAt,
	}
}

// Session is an authenticated session. Only remember-me sessions are
// persisted outside process memory.
type Session struct {
	ID         string      `json:"id"`
	User       SessionUser `json:"user"`
	RememberMe bool        `json:"rememberMe"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// UserInput carries the fields for creating a user. The password arrives
// already hashed; handlers own the bcrypt step.
type UserInput struct {
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Department   string
	Active       bool
}

// UserPatch is a partial update. Nil fields are left unchanged.
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *Role
	Department   *string
	Active       *bool
}
