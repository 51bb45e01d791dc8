package ports

import "time"

// PasswordHasher hashes and verifies passwords (bcrypt).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs and verifies session tokens (HS256, pinned).
type TokenIssuer interface {
	// Issue returns a signed token whose subject is the stringified user id,
	// plus the client-side expiry to set on the cookie. The cookie expiry is
	// slightly earlier than the token's own, so the browser never sends a
	// token that is already expired server-side.
	Issue(userID int64) (token string, expiresAt time.Time, err error)
	// Verify checks signature and expiry and returns the subject claim.
	Verify(token string) (subject string, err error)
}
