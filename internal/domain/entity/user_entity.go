package entity

import (
	"strings"
	"time"
)

// User is the aggregate root for the user domain.
// PasswordHash only ever holds a bcrypt digest.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Cars         []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the only user representation returned to clients.
type PublicUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// ToPublicView strips everything but the client-safe fields.
func ToPublicView(u User) PublicUser {
	return PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// ToPublicViews maps a slice of users, never returning nil.
func ToPublicViews(users []User) []PublicUser {
	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, ToPublicView(u))
	}
	return out
}

// NormalizeEmail lowercases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserFields carries client-supplied profile fields. A nil pointer means "not provided".
type UserFields struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

// IsEmpty reports whether no field was provided.
func (f UserFields) IsEmpty() bool {
	return f.FirstName == nil && f.LastName == nil && f.Email == nil && f.Password == nil
}

// IsComplete reports whether every mutable field was provided.
func (f UserFields) IsComplete() bool {
	return f.FirstName != nil && f.LastName != nil && f.Email != nil && f.Password != nil
}

// UserUpdate is what the store applies. It has no plaintext password field,
// so a raw password cannot reach persistence.
type UserUpdate struct {
	FirstName    *string
	LastName     *string
	Email        *string
	PasswordHash *string
}

// Apply merges the non-nil fields into u.
func (up UserUpdate) Apply(u *User) {
	if up.FirstName != nil {
		u.FirstName = *up.FirstName
	}
	if up.LastName != nil {
		u.LastName = *up.LastName
	}
	if up.Email != nil {
		u.Email = *up.Email
	}
	if up.PasswordHash != nil {
		u.PasswordHash = *up.PasswordHash
	}
}
