package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour, 7*24*time.Hour)

	token, err := codec.IssueAccess("principal-1")
	require.NoError(t, err)

	result := codec.Verify(token)
	assert.Equal(t, StatusValid, result.Status)
	assert.Equal(t, "principal-1", result.Subject)
}

func TestCodecRefreshRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour, 7*24*time.Hour)

	token, err := codec.IssueRefresh("principal-2")
	require.NoError(t, err)

	result := codec.Verify(token)
	assert.Equal(t, StatusValid, result.Status)
	assert.Equal(t, "principal-2", result.Subject)
}

func TestCodecExpired(t *testing.T) {
	// A negative TTL issues a token that is already past its window.
	codec := NewCodec("test-secret", -time.Minute, 7*24*time.Hour)

	token, err := codec.IssueAccess("principal-1")
	require.NoError(t, err)

	result := codec.Verify(token)
	assert.Equal(t, StatusExpired, result.Status)
	assert.Equal(t, "principal-1", result.Subject)
}

func TestCodecMalformed(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour, 7*24*time.Hour)

	for _, tokenString := range []string{
		"",
		"not-a-token",
		"aaa.bbb.ccc",
	} {
		result := codec.Verify(tokenString)
		assert.Equal(t, StatusMalformed, result.Status, "token %q", tokenString)
	}
}

func TestCodecWrongKeyIsMalformed(t *testing.T) {
	issuer := NewCodec("secret-a", time.Hour, 7*24*time.Hour)
	verifier := NewCodec("secret-b", time.Hour, 7*24*time.Hour)

	token, err := issuer.IssueAccess("principal-1")
	require.NoError(t, err)

	result := verifier.Verify(token)
	assert.Equal(t, StatusMalformed, result.Status)
}

func TestCodecUnsupportedSigningMethod(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour, 7*24*time.Hour)

	claims := jwt.MapClaims{
		"sub": "principal-1",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	result := codec.Verify(tokenString)
	assert.Equal(t, StatusUnsupported, result.Status)
}

func TestCodecVerifyHasNoSideEffects(t *testing.T) {
	// Verify must not touch any store; it only reads the token and the
	// clock. Running it repeatedly on the same expired token yields the
	// same classification.
	codec := NewCodec("test-secret", -time.Minute, 7*24*time.Hour)

	token, err := codec.IssueAccess("principal-1")
	require.NoError(t, err)

	first := codec.Verify(token)
	second := codec.Verify(token)
	assert.Equal(t, first, second)
}
