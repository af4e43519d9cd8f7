package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/church-service/internal/domain"
)

func TestTokenCodecRoundTrip(t *testing.T) {
	codec := NewTokenCodec("unit-test-secret", 15)

	token, expiresAt, err := codec.Encode("pastor1", domain.RolePastor)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "pastor1", claims.Subject)
	assert.Equal(t, domain.RolePastor, claims.Role)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt.Time, time.Second)
}

func TestTokenCodecTamperedSignature(t *testing.T) {
	codec := NewTokenCodec("unit-test-secret", 15)

	token, _, err := codec.Encode("treasurer1", domain.RoleTreasurer)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Flip one character of the signature segment.
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = codec.Decode(tampered)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenCodecTamperedPayload(t *testing.T) {
	codec := NewTokenCodec("unit-test-secret", 15)

	token, _, err := codec.Encode("member1", domain.RoleMember)
	require.NoError(t, err)

	// Splice the payload of a token claiming a different role onto the
	// original signature. The claims must not survive re-signing checks.
	elevated, _, err := codec.Encode("member1", domain.RoleAdmin)
	require.NoError(t, err)

	origParts := strings.Split(token, ".")
	elevParts := strings.Split(elevated, ".")
	forged := elevParts[0] + "." + elevParts[1] + "." + origParts[2]

	_, err = codec.Decode(forged)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenCodecExpired(t *testing.T) {
	codec := NewTokenCodec("unit-test-secret", -5)

	token, _, err := codec.Encode("secretary1", domain.RoleSecretary)
	require.NoError(t, err)

	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestTokenCodecWrongSecret(t *testing.T) {
	codec := NewTokenCodec("unit-test-secret", 15)
	other := NewTokenCodec("a-different-secret", 15)

	token, _, err := codec.Encode("pastor1", domain.RolePastor)
	require.NoError(t, err)

	_, err = other.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenCodecInvalidFormat(t *testing.T) {
	codec := NewTokenCodec("unit-test-secret", 15)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d", "!!!.???.###"} {
		_, err := codec.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidFormat, "token %q", token)
	}
}
