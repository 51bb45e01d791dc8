package middleware

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/mserban/atelier/internal/infrastructure/http/respond"
)

// Recoverer converts a handler panic into the localized 500 payload.
// chi's stock recoverer writes a bare status, which would break the
// response contract.
func Recoverer(log zerolog.Logger, rp *respond.Responder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panic")
					rp.Error(w, r, fmt.Errorf("panic: %v", rec))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
