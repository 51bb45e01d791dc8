package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mserban/atelier/internal/domain"
	"github.com/mserban/atelier/internal/infrastructure/http/respond"
	"github.com/mserban/atelier/internal/infrastructure/translation"
)

type fakeIssuer struct {
	valid map[string]string // token -> subject
}

func (f *fakeIssuer) Issue(userID int64) (string, time.Time, error) {
	return "", time.Time{}, errors.New("not implemented")
}

func (f *fakeIssuer) Verify(token string) (string, error) {
	subject, ok := f.valid[token]
	if !ok {
		return "", errors.New("invalid token")
	}
	return subject, nil
}

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (f *fakeUserRepo) Create(_ context.Context, _ *domain.User) error { return nil }

func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return f.users[id], nil
}

func newGuard(t *testing.T) *AuthGuard {
	t.Helper()
	issuer := &fakeIssuer{valid: map[string]string{
		"good-token":    "7",
		"orphan-token":  "99",
		"garbled-token": "not-a-number",
	}}
	repo := &fakeUserRepo{users: map[int64]*domain.User{
		7: {ID: 7, Name: "Ana", Email: "ana@example.com"},
	}}
	rp := respond.NewResponder(translation.NewPassthrough(), zerolog.Nop())
	return NewAuthGuard(issuer, repo, rp)
}

func TestAuthGuard(t *testing.T) {
	tests := []struct {
		name       string
		cookie     *http.Cookie
		wantStatus int
	}{
		{
			name:       "valid session passes",
			cookie:     &http.Cookie{Name: "access_token", Value: "Bearer good-token"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing cookie",
			cookie:     nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing bearer prefix",
			cookie:     &http.Cookie{Name: "access_token", Value: "good-token"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token after prefix",
			cookie:     &http.Cookie{Name: "access_token", Value: "Bearer "},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			cookie:     &http.Cookie{Name: "access_token", Value: "Bearer bad-token"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "subject not a user id",
			cookie:     &http.Cookie{Name: "access_token", Value: "Bearer garbled-token"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "subject resolves to no user",
			cookie:     &http.Cookie{Name: "access_token", Value: "Bearer orphan-token"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard := newGuard(t)
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/projects/all", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			guard.Handler(next).ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestAuthGuardCookieSetByBrowserRoundTrip(t *testing.T) {
	// A Set-Cookie value with the Bearer prefix survives Go's cookie
	// quoting and parses back to the same token.
	guard := newGuard(t)

	rec := httptest.NewRecorder()
	http.SetCookie(rec, &http.Cookie{Name: "access_token", Value: "Bearer good-token", Path: "/"})

	req := httptest.NewRequest(http.MethodGet, "/projects/all", nil)
	req.Header.Set("Cookie", rec.Header().Get("Set-Cookie"))

	var sawUser bool
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		sawUser = true
		w.WriteHeader(http.StatusOK)
	})
	guard.Handler(next).ServeHTTP(httptest.NewRecorder(), req)
	if !sawUser {
		t.Error("request with round-tripped cookie was rejected")
	}
}
