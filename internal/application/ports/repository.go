package ports

import (
	"context"

	"github.com/mserban/atelier/internal/domain"
)

// UserRepository defines persistence for users. Lookups return (nil, nil)
// when no matching user exists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ProjectOrder selects the listing order by creation time.
type ProjectOrder string

const (
	OrderNewest ProjectOrder = "newest"
	OrderOldest ProjectOrder = "oldest"
)

// ProjectRepository defines persistence for projects and their photo index.
// Listing and lookup load the photos ordered by creation time ascending,
// insertion order breaking ties.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Count(ctx context.Context, onlyActive bool) (int64, error)
	List(ctx context.Context, onlyActive bool, order ProjectOrder, limit, offset int) ([]*domain.Project, error)
	AddPhoto(ctx context.Context, photo *domain.Photo) error
	DeletePhoto(ctx context.Context, photoID int64) error
}
