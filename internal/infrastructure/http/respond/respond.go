// Package respond is the single place that maps errors to HTTP status
// codes and renders localized JSON payloads. Handlers and middleware
// delegate here; nothing downstream re-catches.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/mserban/atelier/internal/application/ports"
	domerrors "github.com/mserban/atelier/internal/domain/errors"
)

// Canonical Romanian headline strings; outbound responses carry their
// translation into the negotiated language.
const (
	validationError   = "Eroare de validare"
	validationMessage = "A aparut o eroare de validare. Verificati datele si sa incercati din nou."

	unauthorizedError   = "Neautorizat"
	unauthorizedMessage = "Trebuie sa fi logat pentru a efectua aceasta actiune"

	notFoundError   = "Nu exista"
	notFoundMessage = "Aceast url nu exista"

	unexpectedError   = "Eroare neasteptata"
	unexpectedMessage = "A aparut o eroare neasteptata. Va rugam sa incercati mai tarziu"
)

var base = language.Romanian

type errorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Responder renders localized error payloads. The supported-language list
// is fetched from the translator lazily and cached on success; a failed
// fetch serves the base language and is retried on the next request.
type Responder struct {
	translator ports.Translator
	log        zerolog.Logger

	mu      sync.Mutex
	targets []language.Tag
	matcher language.Matcher
}

func NewResponder(translator ports.Translator, log zerolog.Logger) *Responder {
	return &Responder{translator: translator, log: log}
}

// JSON writes v with the given status.
func (rp *Responder) JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error maps err to an HTTP status and writes the localized payload.
// Anything unrecognized collapses to a generic 500; internals are logged,
// never sent to the caller.
func (rp *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domerrors.ValidationError
	switch {
	case errors.As(err, &vErr):
		target := rp.target(r)
		details := make(map[string]string, len(vErr.Details))
		for field, msg := range vErr.Details {
			details[field] = rp.tr(r, msg, target)
		}
		rp.JSON(w, vErr.Status, errorBody{
			Error:   rp.tr(r, validationError, target),
			Message: rp.tr(r, validationMessage, target),
			Details: details,
		})
	case errors.Is(err, domerrors.ErrUnauthorized):
		rp.Unauthorized(w, r)
	default:
		rp.log.Error().Err(err).Str("path", r.URL.Path).Msg("unexpected error")
		target := rp.target(r)
		rp.JSON(w, http.StatusInternalServerError, errorBody{
			Error:   rp.tr(r, unexpectedError, target),
			Message: rp.tr(r, unexpectedMessage, target),
		})
	}
}

// Unauthorized writes the localized 401 payload.
func (rp *Responder) Unauthorized(w http.ResponseWriter, r *http.Request) {
	target := rp.target(r)
	rp.JSON(w, http.StatusUnauthorized, errorBody{
		Error:   rp.tr(r, unauthorizedError, target),
		Message: rp.tr(r, unauthorizedMessage, target),
	})
}

// NotFound writes the localized 404 payload for unmatched routes.
func (rp *Responder) NotFound(w http.ResponseWriter, r *http.Request) {
	target := rp.target(r)
	rp.JSON(w, http.StatusNotFound, errorBody{
		Error:   rp.tr(r, notFoundError, target),
		Message: rp.tr(r, notFoundMessage, target),
	})
}

// target negotiates the response language from the Accept-Language header
// against the translator's supported targets. Romanian wins when the
// header is absent or nothing overlaps.
func (rp *Responder) target(r *http.Request) language.Tag {
	targets, matcher := rp.negotiator(r)
	_, index := language.MatchStrings(matcher, r.Header.Get("Accept-Language"))
	return targets[index]
}

// negotiator returns the supported targets and their matcher, fetching the
// list on first use. A transient fetch failure must not pin the process to
// the base language, so only a successful fetch is cached.
func (rp *Responder) negotiator(r *http.Request) ([]language.Tag, language.Matcher) {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	if rp.matcher == nil {
		targets, err := rp.translator.Targets(r.Context())
		if err != nil || len(targets) == 0 {
			if err != nil {
				rp.log.Warn().Err(err).Msg("fetch translation targets; serving base language")
			}
			fallback := []language.Tag{base}
			return fallback, language.NewMatcher(fallback)
		}
		rp.targets = targets
		rp.matcher = language.NewMatcher(targets)
	}
	return rp.targets, rp.matcher
}

// tr translates text into target, falling back to the source text when the
// backend fails: an error response must still be deliverable.
func (rp *Responder) tr(r *http.Request, text string, target language.Tag) string {
	if target == base {
		return text
	}
	translated, err := rp.translator.Translate(r.Context(), text, base, target)
	if err != nil {
		rp.log.Warn().Err(err).Str("text", text).Msg("translate failed; using source text")
		return text
	}
	return translated
}
