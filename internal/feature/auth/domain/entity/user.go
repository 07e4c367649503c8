// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered member of the network.
// It contains authentication credentials and profile metadata.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	// Username is the display name shown on posts and comments.
	Username string `gorm:"size:100;not null" json:"username"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Password is the hashed password for the user.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null" json:"-"`

	// SessionToken is the user's single active session token.
	// It is nil until the first login and rotated on every login.
	// Only the database-backed session store uses this column; the Redis
	// store keeps tokens outside this table.
	SessionToken *string `gorm:"uniqueIndex;size:64" json:"-"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"-"`
}
