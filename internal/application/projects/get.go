package projects

import (
	"context"

	"github.com/mserban/atelier/internal/application/ports"
	domerrors "github.com/mserban/atelier/internal/domain/errors"
)

type Get struct {
	projects ports.ProjectRepository
	files    ports.FileStore
}

func NewGet(projects ports.ProjectRepository, files ports.FileStore) *Get {
	return &Get{projects: projects, files: files}
}

// Execute loads one project. The public variant hides inactive projects
// behind the same not-found error as missing ones.
func (uc *Get) Execute(ctx context.Context, id int64, publicOnly bool) (*ProjectView, error) {
	project, err := uc.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil || (publicOnly && !project.Active) {
		return nil, domerrors.FromCode(domerrors.CodeProjectNotFound, "id")
	}
	view := newProjectView(project, uc.files)
	return &view, nil
}
