package translation

import (
	"context"

	"golang.org/x/text/language"

	"github.com/mserban/atelier/internal/application/ports"
)

// Passthrough returns every text unchanged. Used when the UI language is
// the source language and no external backend is configured.
type Passthrough struct{}

func NewPassthrough() *Passthrough { return &Passthrough{} }

func (p *Passthrough) Translate(_ context.Context, text string, _, _ language.Tag) (string, error) {
	return text, nil
}

func (p *Passthrough) Targets(_ context.Context) ([]language.Tag, error) {
	return []language.Tag{language.Romanian}, nil
}

var _ ports.Translator = (*Passthrough)(nil)
