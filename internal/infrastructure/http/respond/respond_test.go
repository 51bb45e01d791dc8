package respond

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	domerrors "github.com/mserban/atelier/internal/domain/errors"
	"github.com/mserban/atelier/internal/infrastructure/translation"
)

// prefixTranslator marks translated strings so tests can tell them apart
// from the Romanian source.
type prefixTranslator struct{}

func (prefixTranslator) Translate(_ context.Context, text string, _, target language.Tag) (string, error) {
	return target.String() + ":" + text, nil
}

func (prefixTranslator) Targets(_ context.Context) ([]language.Tag, error) {
	return []language.Tag{language.Romanian, language.English, language.German}, nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestErrorValidation(t *testing.T) {
	rp := NewResponder(translation.NewPassthrough(), zerolog.Nop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rp.Error(rec, req, domerrors.FromCode(domerrors.CodeProjectNotFound, "id"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "Eroare de validare" {
		t.Errorf("unexpected error headline: %v", body["error"])
	}
	details, ok := body["details"].(map[string]interface{})
	if !ok || details["id"] != "Proiectul nu exista" {
		t.Errorf("unexpected details: %v", body["details"])
	}
}

func TestErrorUnauthorized(t *testing.T) {
	rp := NewResponder(translation.NewPassthrough(), zerolog.Nop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rp.Error(rec, req, domerrors.ErrUnauthorized)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "Neautorizat" {
		t.Errorf("unexpected error headline: %v", body["error"])
	}
	if _, hasDetails := body["details"]; hasDetails {
		t.Error("401 payload must not carry details")
	}
}

func TestErrorUnexpectedHidesInternals(t *testing.T) {
	rp := NewResponder(translation.NewPassthrough(), zerolog.Nop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rp.Error(rec, req, errors.New("pq: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "Eroare neasteptata" {
		t.Errorf("unexpected error headline: %v", body["error"])
	}
	for _, v := range body {
		if s, ok := v.(string); ok && s == "pq: connection refused" {
			t.Error("internal error text leaked to the caller")
		}
	}
}

func TestLanguageNegotiation(t *testing.T) {
	tests := []struct {
		name           string
		acceptLanguage string
		wantError      string
	}{
		{"negotiates english", "en-US,en;q=0.9", "en:Neautorizat"},
		{"negotiates german", "de", "de:Neautorizat"},
		{"missing header falls back to romanian", "", "Neautorizat"},
		{"no overlap falls back to romanian", "ja", "Neautorizat"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rp := NewResponder(prefixTranslator{}, zerolog.Nop())
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tt.acceptLanguage)
			}
			rp.Unauthorized(rec, req)
			body := decodeBody(t, rec)
			if body["error"] != tt.wantError {
				t.Errorf("expected %q, got %v", tt.wantError, body["error"])
			}
		})
	}
}

// failingTranslator always errors; the responder must fall back to the
// source text instead of failing the response.
type failingTranslator struct{}

func (failingTranslator) Translate(context.Context, string, language.Tag, language.Tag) (string, error) {
	return "", errors.New("backend down")
}

func (failingTranslator) Targets(context.Context) ([]language.Tag, error) {
	return []language.Tag{language.Romanian, language.English}, nil
}

func TestTranslationFailureFallsBackToSource(t *testing.T) {
	rp := NewResponder(failingTranslator{}, zerolog.Nop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en")
	rp.Unauthorized(rec, req)

	body := decodeBody(t, rec)
	if body["error"] != "Neautorizat" {
		t.Errorf("expected the Romanian source text, got %v", body["error"])
	}
}

// flakyTargetsTranslator fails the first Targets fetch and succeeds after.
type flakyTargetsTranslator struct {
	calls int
}

func (f *flakyTargetsTranslator) Translate(_ context.Context, text string, _, target language.Tag) (string, error) {
	return target.String() + ":" + text, nil
}

func (f *flakyTargetsTranslator) Targets(_ context.Context) ([]language.Tag, error) {
	f.calls++
	if f.calls == 1 {
		return nil, errors.New("backend down")
	}
	return []language.Tag{language.Romanian, language.English}, nil
}

func TestTargetsFetchFailureIsRetried(t *testing.T) {
	rp := NewResponder(&flakyTargetsTranslator{}, zerolog.Nop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en")
	rp.Unauthorized(rec, req)
	body := decodeBody(t, rec)
	if body["error"] != "Neautorizat" {
		t.Errorf("first response should serve the base language, got %v", body["error"])
	}

	rec = httptest.NewRecorder()
	rp.Unauthorized(rec, req)
	body = decodeBody(t, rec)
	if body["error"] != "en:Neautorizat" {
		t.Errorf("second response should negotiate english, got %v", body["error"])
	}
}

func TestNotFound(t *testing.T) {
	rp := NewResponder(translation.NewPassthrough(), zerolog.Nop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/no-such-route", nil)
	rp.NotFound(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "Nu exista" {
		t.Errorf("unexpected error headline: %v", body["error"])
	}
}
