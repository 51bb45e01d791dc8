package translation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestDeepLTranslateMemoizes(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/v2/translate", r.URL.Path)
		assert.Equal(t, "DeepL-Auth-Key test-key", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "RO", r.PostForm.Get("source_lang"))
		assert.Equal(t, "EN", r.PostForm.Get("target_lang"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"translations":[{"text":"Unauthorized"}]}`))
	}))
	defer server.Close()

	deepl := NewDeepL("test-key", server.URL)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		got, err := deepl.Translate(ctx, "Neautorizat", language.Romanian, language.English)
		require.NoError(t, err)
		assert.Equal(t, "Unauthorized", got)
	}
	assert.Equal(t, 1, hits, "second call must be served from the cache")
}

func TestDeepLTranslateSameLanguagePassesThrough(t *testing.T) {
	deepl := NewDeepL("test-key", "http://127.0.0.1:0")
	got, err := deepl.Translate(context.Background(), "Neautorizat", language.Romanian, language.Romanian)
	require.NoError(t, err)
	assert.Equal(t, "Neautorizat", got)
}

func TestDeepLTranslateErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	deepl := NewDeepL("bad-key", server.URL)
	_, err := deepl.Translate(context.Background(), "Neautorizat", language.Romanian, language.English)
	assert.Error(t, err)
}

func TestDeepLTargets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/languages", r.URL.Path)
		assert.Equal(t, "target", r.URL.Query().Get("type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"language":"EN-US"},{"language":"DE"},{"language":"RO"}]`))
	}))
	defer server.Close()

	deepl := NewDeepL("test-key", server.URL)
	targets, err := deepl.Targets(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, targets)
	assert.Equal(t, language.Romanian, targets[0], "Romanian must lead the list")
	assert.Contains(t, targets, language.German)
}
