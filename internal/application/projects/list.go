package projects

import (
	"context"

	"github.com/mserban/atelier/internal/application/ports"
	"github.com/mserban/atelier/internal/pagination"
)

// PageSize is fixed for all project listings.
const PageSize = 25

type ListInput struct {
	Order      ports.ProjectOrder
	Page       int
	PublicOnly bool
}

type ListResult struct {
	Results []ProjectView   `json:"results"`
	Meta    pagination.Meta `json:"meta"`
}

type List struct {
	projects ports.ProjectRepository
	files    ports.FileStore
}

func NewList(projects ports.ProjectRepository, files ports.FileStore) *List {
	return &List{projects: projects, files: files}
}

func (uc *List) Execute(ctx context.Context, input ListInput) (*ListResult, error) {
	total, err := uc.projects.Count(ctx, input.PublicOnly)
	if err != nil {
		return nil, err
	}

	rows, err := uc.projects.List(ctx, input.PublicOnly, input.Order,
		PageSize, pagination.Offset(input.Page, PageSize))
	if err != nil {
		return nil, err
	}

	results := make([]ProjectView, 0, len(rows))
	for _, p := range rows {
		results = append(results, newProjectView(p, uc.files))
	}
	return &ListResult{
		Results: results,
		Meta:    pagination.Compute(input.Page, PageSize, total),
	}, nil
}
