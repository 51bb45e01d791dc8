package projects

import (
	"context"
	"fmt"

	"github.com/mserban/atelier/internal/application/ports"
	"github.com/mserban/atelier/internal/domain"
	domerrors "github.com/mserban/atelier/internal/domain/errors"
)

// UpdateInput carries only the fields present in the PATCH body. A nil
// pointer means "leave unchanged". HasDescription distinguishes an absent
// description from an explicit empty one, which clears it.
type UpdateInput struct {
	Name           *string
	URL            *string
	Description    *string
	HasDescription bool
	Active         *bool
	PhotosToDelete []string
	Photos         []PhotoUpload
}

type Update struct {
	projects ports.ProjectRepository
	files    ports.FileStore
}

func NewUpdate(projects ports.ProjectRepository, files ports.FileStore) *Update {
	return &Update{projects: projects, files: files}
}

func (uc *Update) Execute(ctx context.Context, id int64, input UpdateInput) error {
	project, err := uc.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if project == nil {
		return domerrors.FromCode(domerrors.CodeProjectNotFound, "id")
	}

	// Resolve every requested deletion before touching anything, so a bad
	// name fails the whole request with the offending index.
	toDelete := make([]*domain.Photo, 0, len(input.PhotosToDelete))
	for i, name := range input.PhotosToDelete {
		photo := findPhoto(project.Photos, name)
		if photo == nil {
			return domerrors.FromCode(domerrors.CodePhotoNotFound, fmt.Sprintf("photosToDelete.%d", i))
		}
		toDelete = append(toDelete, photo)
	}

	for _, photo := range toDelete {
		// Storage first, then the index row. Delete swallows already-missing
		// objects, so the two stay reconciled.
		if err := uc.files.Delete(ctx, photo.Name); err != nil {
			return err
		}
		if err := uc.projects.DeletePhoto(ctx, photo.ID); err != nil {
			return err
		}
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.URL != nil {
		project.URL = *input.URL
	}
	if input.HasDescription {
		project.Description = input.Description
	}
	if input.Active != nil {
		project.Active = *input.Active
	}
	if err := uc.projects.Update(ctx, project); err != nil {
		return err
	}

	return uploadPhotos(ctx, uc.projects, uc.files, project.ID, input.Photos)
}

func findPhoto(photos []domain.Photo, name string) *domain.Photo {
	for i := range photos {
		if photos[i].Name == name {
			return &photos[i]
		}
	}
	return nil
}
