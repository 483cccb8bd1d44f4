package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
// Group members and expense participants are referenced by User ID.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the user's email address (unique). Used for login.
	Email string `json:"email"`

	// Phone is the user's phone number (unique, 10 digits).
	// Accepted as a login identifier alongside email.
	Phone string `json:"phone"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized in responses.
	PasswordHash string `json:"-"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"createdAt"`
}

// NewUser creates a user with a generated ID and creation timestamp.
func NewUser(name, email, phone, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}

// UserSummary is the id+name projection returned by the user directory.
type UserSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BlacklistedToken records a JWT invalidated by logout.
// The auth middleware rejects any token present in the blacklist.
type BlacklistedToken struct {
	Token         string `json:"token"`
	BlacklistedAt int64  `json:"blacklistedAt"`
}
