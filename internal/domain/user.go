package domain

import "time"

// User is the domain entity for a registered account. Immutable after
// signup; there is no profile management.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
