package domain

import "time"

// User is a stored credential record. The ID is assigned at registration
// and never changes; the password hash is produced by the credential hasher
// and is opaque to every other component.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never serialize
	CreatedAt    time.Time `json:"created_at"`
}
