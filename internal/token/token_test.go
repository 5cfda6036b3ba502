package token

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	svc := New("test-secret")

	tok, err := svc.Issue("user-42")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestVerify_WrongSecret(t *testing.T) {
	tok, err := New("secret-a").Issue("user-42")
	require.NoError(t, err)

	_, err = New("secret-b").Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	svc := New("test-secret")

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestVerify_MissingUserID(t *testing.T) {
	secret := "test-secret"
	// Signed with the right secret but without the bound identifier claim.
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-42"})
	tok, err := raw.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = New(secret).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsNonHMACMethod(t *testing.T) {
	// alg=none style tokens must never verify.
	raw := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"_id": "user-42"})
	tok, err := raw.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = New("test-secret").Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssue_NoExpiryClaim(t *testing.T) {
	svc := New("test-secret")
	tok, err := svc.Issue("user-42")
	require.NoError(t, err)

	parsed, err := jwt.Parse(tok, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	_, hasExp := claims["exp"]
	assert.False(t, hasExp, "tokens are valid until the secret rotates; no exp claim is set")
}
