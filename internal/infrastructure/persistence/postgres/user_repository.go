package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mserban/atelier/internal/application/ports"
	"github.com/mserban/atelier/internal/domain"
)

const (
	insertUserSQL     = `INSERT INTO users (name, email, password, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	selectUserSQL     = `SELECT id, name, email, password, created_at FROM users WHERE `
	userByEmailClause = `email = $1`
	userByIDClause    = `id = $1`
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.pool.QueryRow(ctx, insertUserSQL,
		user.Name, user.Email, user.Password, user.CreatedAt,
	).Scan(&user.ID)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getWhere(ctx, userByEmailClause, email)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getWhere(ctx, userByIDClause, id)
}

func (r *UserRepository) getWhere(ctx context.Context, clause string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, selectUserSQL+clause, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
