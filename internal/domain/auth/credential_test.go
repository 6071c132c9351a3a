package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePassword_ProducesMarkedHash(t *testing.T) {
	hash, err := EncodePassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", hash)
	assert.True(t, IsHashed(hash), "encoded credential must carry a bcrypt marker, got %q", hash)
}

func TestEncodePassword_SaltedPerCall(t *testing.T) {
	first, err := EncodePassword("secret1")
	require.NoError(t, err)
	second, err := EncodePassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPassword_HashedCredential(t *testing.T) {
	hash, err := EncodePassword("secret1")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("secret1", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestVerifyPassword_LegacyPlaintextCredential(t *testing.T) {
	// Accounts created before hashing store the raw password; exact match
	// must keep working for them.
	assert.True(t, VerifyPassword("legacy-pass", "legacy-pass"))
	assert.False(t, VerifyPassword("legacy-pass", "other-pass"))
	assert.False(t, VerifyPassword("", "legacy-pass"))
}

func TestVerifyPassword_PlaintextNotTreatedAsHash(t *testing.T) {
	// A plaintext credential that merely resembles a password is compared
	// verbatim, never run through bcrypt.
	stored := "plain$2x$nothash"
	assert.False(t, IsHashed(stored))
	assert.True(t, VerifyPassword(stored, stored))
}

func TestIsHashed_Markers(t *testing.T) {
	for _, marker := range []string{"$2a$", "$2b$", "$2y$"} {
		assert.True(t, IsHashed(marker+"10$abcdefghijklmnopqrstuv"), marker)
	}
	assert.False(t, IsHashed("plaintext"))
	assert.False(t, IsHashed(strings.TrimPrefix("$2a$10$x", "$")))
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, DefaultRole, NormalizeRole(""))
	assert.Equal(t, RoleAdmin, NormalizeRole("admin"))
	assert.Equal(t, RoleUser, NormalizeRole("user"))
}
