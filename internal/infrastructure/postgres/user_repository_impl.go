package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/planify/internal/domain/entity"
	repo "github.com/oksasatya/planify/internal/domain/repository"
)

const userColumns = `id::text, name, email, password_hash, avatar_url, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, avatar_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text, created_at, updated_at
	`, u.Name, u.Email, u.PasswordHash, u.AvatarURL)

	return translate(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, uid)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) scanOne(ctx context.Context, sql string, arg any) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, sql, arg)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.AvatarURL,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return u, nil
}

var _ repo.UserRepository = (*UserRepository)(nil)
