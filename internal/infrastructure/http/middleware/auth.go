package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mserban/atelier/internal/application/ports"
	"github.com/mserban/atelier/internal/infrastructure/http/respond"
)

// AuthGuard verifies the session cookie and that its subject still
// resolves to an existing user. Any failure ends the request with the
// localized 401; the guard never distinguishes why.
type AuthGuard struct {
	issuer  ports.TokenIssuer
	users   ports.UserRepository
	respond *respond.Responder
}

func NewAuthGuard(issuer ports.TokenIssuer, users ports.UserRepository, rp *respond.Responder) *AuthGuard {
	return &AuthGuard{issuer: issuer, users: users, respond: rp}
}

func (m *AuthGuard) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("access_token")
		if err != nil {
			m.respond.Unauthorized(w, r)
			return
		}
		token := strings.TrimPrefix(cookie.Value, "Bearer ")
		if token == "" || token == cookie.Value {
			m.respond.Unauthorized(w, r)
			return
		}
		subject, err := m.issuer.Verify(token)
		if err != nil {
			m.respond.Unauthorized(w, r)
			return
		}
		userID, err := strconv.ParseInt(subject, 10, 64)
		if err != nil {
			m.respond.Unauthorized(w, r)
			return
		}
		user, err := m.users.GetByID(r.Context(), userID)
		if err != nil || user == nil {
			m.respond.Unauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
