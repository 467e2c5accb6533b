package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/planify/internal/domain/entity"
	repo "github.com/oksasatya/planify/internal/domain/repository"
)

const projectColumns = `id::text, owner_id::text, title, description, start_date, end_date,
	tech_stack, pinned, email_alerts, notes, created_at, updated_at`

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	p := &entity.Project{}
	if err := row.Scan(&p.ID, &p.Owner, &p.Title, &p.Description, &p.StartDate, &p.EndDate,
		&p.TechStack, &p.Pinned, &p.EmailAlerts, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	return p, nil
}

func stack(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	owner, err := parseID(p.Owner)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO projects (owner_id, title, description, start_date, end_date, tech_stack, pinned, email_alerts, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id::text, created_at, updated_at
	`, owner, p.Title, p.Description, p.StartDate, p.EndDate, stack(p.TechStack), p.Pinned, p.EmailAlerts, p.Notes)

	return translate(row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt))
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	pid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	p, err := scanProject(r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, pid))
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Project, error) {
	owner, err := parseID(ownerID)
	if err != nil {
		return []entity.Project{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE owner_id = $1
		ORDER BY pinned DESC, updated_at DESC
	`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	pid, err := parseID(p.ID)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE projects
		SET title = $1, description = $2, start_date = $3, end_date = $4, tech_stack = $5,
			pinned = $6, email_alerts = $7, notes = $8, updated_at = now()
		WHERE id = $9
		RETURNING updated_at
	`, p.Title, p.Description, p.StartDate, p.EndDate, stack(p.TechStack), p.Pinned, p.EmailAlerts, p.Notes, pid)

	return translate(row.Scan(&p.UpdatedAt))
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	pid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, pid)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

var _ repo.ProjectRepository = (*ProjectRepository)(nil)
