package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("64f000000000000000000001", secret, AccessTokenTTL)
	require.NoError(t, err)

	userID, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "64f000000000000000000001", userID)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("abc", secret, AccessTokenTTL)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("other-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken("abc", secret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not-a-jwt", secret)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken("", secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
