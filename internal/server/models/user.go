// Package models defines blogd rows that never leave the server.
package models

import "time"

// User is an identity registered with blogd. Only the Argon2id hash of the
// password and its salt are stored.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	Salt         []byte
	CreatedAt    time.Time
}
