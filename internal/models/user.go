package models

import "time"

// User is a credential holder with a unique username. PasswordHash is a
// bcrypt hash; the clear-text password never reaches the storage layer.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
