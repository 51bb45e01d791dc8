package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/mserban/atelier/internal/application/ports"
)

// DefaultDeepLBaseURL is the free-tier API host.
const DefaultDeepLBaseURL = "https://api-free.deepl.com"

// DeepL translates through the DeepL REST API and memoizes results in a
// process-lifetime cache.
type DeepL struct {
	apiKey  string
	baseURL string
	client  *http.Client
	cache   *Cache
}

func NewDeepL(apiKey, baseURL string) *DeepL {
	if baseURL == "" {
		baseURL = DefaultDeepLBaseURL
	}
	return &DeepL{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   NewCache(),
	}
}

func (d *DeepL) Translate(ctx context.Context, text string, source, target language.Tag) (string, error) {
	if target == source {
		return text, nil
	}
	return d.cache.GetOrCompute(text, target, func() (string, error) {
		return d.translate(ctx, text, source, target)
	})
}

func (d *DeepL) translate(ctx context.Context, text string, source, target language.Tag) (string, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("source_lang", strings.ToUpper(source.String()))
	form.Set("target_lang", strings.ToUpper(target.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/v2/translate", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "DeepL-Auth-Key "+d.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepl translate: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deepl translate: unexpected status %d", res.StatusCode)
	}

	var body struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("deepl translate: decode response: %w", err)
	}
	if len(body.Translations) == 0 {
		return "", fmt.Errorf("deepl translate: empty response")
	}
	return body.Translations[0].Text, nil
}

// Targets fetches the languages DeepL can translate into. Romanian leads
// the list so it wins negotiation when nothing else matches.
func (d *DeepL) Targets(ctx context.Context) ([]language.Tag, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/v2/languages?type=target", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "DeepL-Auth-Key "+d.apiKey)

	res, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deepl languages: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("deepl languages: unexpected status %d", res.StatusCode)
	}

	var body []struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("deepl languages: decode response: %w", err)
	}

	targets := []language.Tag{language.Romanian}
	for _, entry := range body {
		tag, err := language.Parse(entry.Language)
		if err != nil || tag == language.Romanian {
			continue
		}
		targets = append(targets, tag)
	}
	return targets, nil
}

var _ ports.Translator = (*DeepL)(nil)
