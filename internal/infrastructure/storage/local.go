package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mserban/atelier/internal/application/ports"
)

// Local stores objects as files under a single directory and serves them
// from a static base URL.
type Local struct {
	dir     string
	baseURL string
}

func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Local{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (l *Local) Upload(_ context.Context, content []byte, name, _ string) error {
	if err := os.WriteFile(filepath.Join(l.dir, name), content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Delete is idempotent: removing a missing file is not an error.
func (l *Local) Delete(_ context.Context, name string) error {
	err := os.Remove(filepath.Join(l.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

func (l *Local) URL(name string) string {
	return l.baseURL + "/" + name
}

var _ ports.FileStore = (*Local)(nil)
