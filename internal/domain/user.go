package domain

import "time"

// User is the domain model for registered accounts. Email is stored
// lowercased and is unique across all users.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
