package domain

import "time"

// User represents a registered account. The password is only ever held as a
// bcrypt hash; plaintext never reaches the domain layer after validation.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
