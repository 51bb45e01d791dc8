package projects

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mserban/atelier/internal/application/ports"
	"github.com/mserban/atelier/internal/domain"
)

// PhotoUpload is a photo received from a multipart request.
type PhotoUpload struct {
	Content  []byte
	MimeType string
}

// uploadPhotos stores each photo sequentially and records it in the photo
// index. There is no rollback: photos uploaded before a failure stay both
// in the store and in the index.
func uploadPhotos(ctx context.Context, repo ports.ProjectRepository, files ports.FileStore, projectID int64, photos []PhotoUpload) error {
	for _, photo := range photos {
		name := uuid.NewString() + extensionForMIME(photo.MimeType)
		if err := files.Upload(ctx, photo.Content, name, photo.MimeType); err != nil {
			return fmt.Errorf("upload photo %s: %w", name, err)
		}
		record := &domain.Photo{
			ProjectID: projectID,
			Name:      name,
			CreatedAt: time.Now(),
		}
		if err := repo.AddPhoto(ctx, record); err != nil {
			return fmt.Errorf("index photo %s: %w", name, err)
		}
	}
	return nil
}

// extensionForMIME derives a file extension from the MIME subtype:
// "image/png" yields ".png".
func extensionForMIME(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	_, subtype, found := strings.Cut(strings.TrimSpace(mimeType), "/")
	if !found || subtype == "" {
		return ""
	}
	return "." + subtype
}
