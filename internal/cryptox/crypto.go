// Package cryptox hashes account passwords for blogd.
//
// Passwords are stretched with Argon2id using a random per-user salt; only
// the salt and the derived hash are stored. Verification recomputes the hash
// and compares in constant time.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/blogsync/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SaltSize = 16
	KeySize  = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// DeriveKey stretches password with salt using Argon2id.
func DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, KeySize)
}

// HashPassword returns a fresh salt and the Argon2id hash of password under it.
func HashPassword(password []byte) (hash, salt []byte) {
	salt = common.GenerateRandByteArray(SaltSize)
	return DeriveKey(password, salt), salt
}

// CheckPassword reports whether password hashes to hash under salt.
func CheckPassword(password, salt, hash []byte) bool {
	return subtle.ConstantTimeCompare(DeriveKey(password, salt), hash) == 1
}
