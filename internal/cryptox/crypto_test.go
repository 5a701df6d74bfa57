package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	require.Len(t, key1, KeySize)
	assert.True(t, bytes.Equal(key1, key2))
}

func TestDeriveKey_SaltMatters(t *testing.T) {
	password := []byte("secret-password")
	assert.NotEqual(t, DeriveKey(password, []byte("salt-1")), DeriveKey(password, []byte("salt-2")))
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, salt := HashPassword([]byte("hunter22"))
	require.Len(t, salt, SaltSize)

	assert.True(t, CheckPassword([]byte("hunter22"), salt, hash))
	assert.False(t, CheckPassword([]byte("hunter23"), salt, hash))
}

func TestHashPassword_FreshSaltEachTime(t *testing.T) {
	h1, s1 := HashPassword([]byte("same"))
	h2, s2 := HashPassword([]byte("same"))
	assert.NotEqual(t, s1, s2)
	assert.NotEqual(t, h1, h2)
}
