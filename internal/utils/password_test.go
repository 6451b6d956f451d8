package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotContains(t, hash, "correct horse")

	assert.True(t, VerifyPassword(hash, "correct horse battery staple"))
	assert.False(t, VerifyPassword(hash, "wrong password"))
	assert.False(t, VerifyPassword(hash, ""))
}

func TestHashPassword_Salted(t *testing.T) {
	h1, err := HashPassword("same password", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("same password", bcrypt.MinCost)
	require.NoError(t, err)

	// bcrypt salts internally, so equal inputs yield distinct digests.
	assert.NotEqual(t, h1, h2)
}

func TestVerifyPassword_GarbageHash(t *testing.T) {
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "anything"))
}
