package projects

import (
	"context"
	"time"

	"github.com/mserban/atelier/internal/application/ports"
	"github.com/mserban/atelier/internal/domain"
)

type CreateInput struct {
	Name        string
	URL         string
	Description *string
	Active      bool
	Photos      []PhotoUpload
}

type Create struct {
	projects ports.ProjectRepository
	files    ports.FileStore
}

func NewCreate(projects ports.ProjectRepository, files ports.FileStore) *Create {
	return &Create{projects: projects, files: files}
}

func (uc *Create) Execute(ctx context.Context, input CreateInput) (*domain.Project, error) {
	project := &domain.Project{
		Name:        input.Name,
		URL:         input.URL,
		Description: input.Description,
		Active:      input.Active,
		CreatedAt:   time.Now(),
	}
	if err := uc.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	if err := uploadPhotos(ctx, uc.projects, uc.files, project.ID, input.Photos); err != nil {
		return nil, err
	}
	return project, nil
}
