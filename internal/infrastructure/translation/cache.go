package translation

import (
	"sync"

	"golang.org/x/text/language"
)

type cacheKey struct {
	text   string
	target language.Tag
}

// Cache memoizes translation results per (source text, target language)
// for the process lifetime. It is never invalidated; the error-message
// vocabulary is small and fixed, so unbounded growth is not a concern.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]string
}

func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]string)}
}

// GetOrCompute returns the cached translation or runs compute exactly once
// for the key. The lock is held across compute so concurrent requests for
// the same text do not trigger duplicate backend calls; with the fixed
// vocabulary the window is tiny.
func (c *Cache) GetOrCompute(text string, target language.Tag, compute func() (string, error)) (string, error) {
	key := cacheKey{text: text, target: target}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.entries[key]; ok {
		return cached, nil
	}
	result, err := compute()
	if err != nil {
		return "", err
	}
	c.entries[key] = result
	return result, nil
}
