package ports

import (
	"context"

	"golang.org/x/text/language"
)

// Translator localizes user-facing error strings.
type Translator interface {
	Translate(ctx context.Context, text string, source, target language.Tag) (string, error)
	// Targets lists the languages the backend can translate into. The first
	// supported language offered to the matcher is always Romanian, the
	// system's base language.
	Targets(ctx context.Context) ([]language.Tag, error)
}
