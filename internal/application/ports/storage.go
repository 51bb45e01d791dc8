package ports

import "context"

// FileStore persists binary objects under generated names. Implementations
// are selected once at startup and never mixed at runtime.
type FileStore interface {
	Upload(ctx context.Context, content []byte, name, mimeType string) error
	// Delete is idempotent: a missing object is not an error. Any other
	// failure propagates.
	Delete(ctx context.Context, name string) error
	// URL returns the public retrieval URL for a stored name. Pure
	// formatting, no I/O.
	URL(name string) string
}
