package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mserban/atelier/internal/application/ports"
)

// Validity is the server-side lifetime of a session token.
const Validity = 30 * 24 * time.Hour

// cookieSkew keeps the cookie's client-side expiry slightly earlier than
// the token's, so a browser never sends a token that already expired.
const cookieSkew = 5000 * time.Millisecond

// TokenIssuer implements ports.TokenIssuer with HS256 over a shared secret.
type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret []byte) *TokenIssuer {
	return &TokenIssuer{secret: secret}
}

// Issue signs a token with subject = userID. Each token carries a random
// high-entropy key identifier so no two issuances are byte-identical.
func (t *TokenIssuer) Issue(userID int64) (string, time.Time, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(Validity)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	kid := make([]byte, 64)
	if _, err := rand.Read(kid); err != nil {
		return "", time.Time{}, err
	}
	token.Header["kid"] = base64.StdEncoding.EncodeToString(kid)

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, now.Add(Validity - cookieSkew), nil
}

// Verify checks signature and expiry and returns the subject claim. The
// algorithm is pinned: tokens signed with anything but HS256 are rejected.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}
	return claims.Subject, nil
}

var _ ports.TokenIssuer = (*TokenIssuer)(nil)
