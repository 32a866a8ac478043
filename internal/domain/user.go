package domain

import "time"

// User represents a registered account holder.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Company      string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
