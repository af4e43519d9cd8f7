package repository

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpaqueTokenShape(t *testing.T) {
	plaintext, hash, err := newOpaqueToken()
	require.NoError(t, err)

	// 32 random bytes, base64url without padding.
	raw, err := base64.RawURLEncoding.DecodeString(plaintext)
	require.NoError(t, err)
	assert.Len(t, raw, 32)

	// SHA-256 hex digest.
	assert.Len(t, hash, 64)
	assert.Equal(t, hashToken(plaintext), hash)
}

func TestNewOpaqueTokenUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		plaintext, hash, err := newOpaqueToken()
		require.NoError(t, err)
		assert.False(t, seen[plaintext], "duplicate token generated")
		assert.False(t, seen[hash], "duplicate hash generated")
		seen[plaintext] = true
		seen[hash] = true
	}
}

func TestHashTokenDeterministic(t *testing.T) {
	assert.Equal(t, hashToken("abc"), hashToken("abc"))
	assert.NotEqual(t, hashToken("abc"), hashToken("abd"))
}
