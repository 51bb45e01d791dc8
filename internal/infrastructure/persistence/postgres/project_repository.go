package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mserban/atelier/internal/application/ports"
	"github.com/mserban/atelier/internal/domain"
)

const (
	insertProjectSQL = `INSERT INTO projects (name, url, description, active, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	selectProjectSQL = `SELECT id, name, url, description, active, created_at FROM projects WHERE id = $1`
	updateProjectSQL = `UPDATE projects SET name = $1, url = $2, description = $3, active = $4 WHERE id = $5`

	insertPhotoSQL      = `INSERT INTO project_photos (project_id, name, created_at) VALUES ($1, $2, $3) RETURNING id`
	deletePhotoSQL      = `DELETE FROM project_photos WHERE id = $1`
	photosByProjectSQL  = `SELECT id, project_id, name, created_at FROM project_photos WHERE project_id = $1 ORDER BY created_at ASC, id ASC`
	photosByProjectsSQL = `SELECT id, project_id, name, created_at FROM project_photos WHERE project_id = ANY($1) ORDER BY created_at ASC, id ASC`
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.pool.QueryRow(ctx, insertProjectSQL,
		project.Name, project.URL, project.Description, project.Active, project.CreatedAt,
	).Scan(&project.ID)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var p domain.Project
	err := r.pool.QueryRow(ctx, selectProjectSQL, id).
		Scan(&p.ID, &p.Name, &p.URL, &p.Description, &p.Active, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, photosByProjectSQL, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var photo domain.Photo
		if err := rows.Scan(&photo.ID, &photo.ProjectID, &photo.Name, &photo.CreatedAt); err != nil {
			return nil, err
		}
		p.Photos = append(p.Photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	_, err := r.pool.Exec(ctx, updateProjectSQL,
		project.Name, project.URL, project.Description, project.Active, project.ID)
	return err
}

func (r *ProjectRepository) Count(ctx context.Context, onlyActive bool) (int64, error) {
	query := `SELECT count(*) FROM projects`
	if onlyActive {
		query += ` WHERE active`
	}
	var total int64
	err := r.pool.QueryRow(ctx, query).Scan(&total)
	return total, err
}

// List returns a page of projects with their photos attached. Ties in
// creation time break on id, keeping the order stable.
func (r *ProjectRepository) List(ctx context.Context, onlyActive bool, order ports.ProjectOrder, limit, offset int) ([]*domain.Project, error) {
	direction := "DESC"
	if order == ports.OrderOldest {
		direction = "ASC"
	}
	where := ""
	if onlyActive {
		where = "WHERE active "
	}
	query := fmt.Sprintf(
		`SELECT id, name, url, description, active, created_at FROM projects %sORDER BY created_at %s, id %s LIMIT $1 OFFSET $2`,
		where, direction, direction)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*domain.Project
	var ids []int64
	byID := make(map[int64]*domain.Project)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.URL, &p.Description, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, &p)
		ids = append(ids, p.ID)
		byID[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return projects, nil
	}

	photoRows, err := r.pool.Query(ctx, photosByProjectsSQL, ids)
	if err != nil {
		return nil, err
	}
	defer photoRows.Close()
	for photoRows.Next() {
		var photo domain.Photo
		if err := photoRows.Scan(&photo.ID, &photo.ProjectID, &photo.Name, &photo.CreatedAt); err != nil {
			return nil, err
		}
		if p, ok := byID[photo.ProjectID]; ok {
			p.Photos = append(p.Photos, photo)
		}
	}
	if err := photoRows.Err(); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepository) AddPhoto(ctx context.Context, photo *domain.Photo) error {
	return r.pool.QueryRow(ctx, insertPhotoSQL,
		photo.ProjectID, photo.Name, photo.CreatedAt,
	).Scan(&photo.ID)
}

func (r *ProjectRepository) DeletePhoto(ctx context.Context, photoID int64) error {
	_, err := r.pool.Exec(ctx, deletePhotoSQL, photoID)
	return err
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)
