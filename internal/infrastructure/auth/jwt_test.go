package auth

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"))

	for _, userID := range []int64{1, 458, 900000} {
		token, expiresAt, err := issuer.Issue(userID)
		require.NoError(t, err)

		subject, err := issuer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, strconv.FormatInt(userID, 10), subject)

		// Cookie expiry must never be later than the token's own expiry.
		assert.True(t, expiresAt.Before(time.Now().Add(Validity)))
		assert.True(t, expiresAt.After(time.Now().Add(Validity-time.Minute)))
	}
}

func TestVerifyRejectsDifferentSecret(t *testing.T) {
	issuer := NewTokenIssuer([]byte("right-secret"))
	other := NewTokenIssuer([]byte("wrong-secret"))

	token, _, err := issuer.Issue(42)
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	claims := jwt.RegisteredClaims{
		Subject:   "42",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = NewTokenIssuer(secret).Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewTokenIssuer([]byte("test-secret")).Verify(none)
	assert.Error(t, err)

	// Same HMAC family, different bit length: still rejected by the pin.
	hs384, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = NewTokenIssuer([]byte("test-secret")).Verify(hs384)
	assert.Error(t, err)
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"))
	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := issuer.Verify(token)
		assert.Error(t, err, "token %q should not verify", token)
	}
}

func TestIssuedTokensAreUnique(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"))
	a, _, err := issuer.Issue(7)
	require.NoError(t, err)
	b, _, err := issuer.Issue(7)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "per-issuance kid should make tokens distinct")
}
