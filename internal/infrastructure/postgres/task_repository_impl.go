package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/planify/internal/domain/entity"
	repo "github.com/oksasatya/planify/internal/domain/repository"
)

const taskColumns = `id::text, project_id::text, title, description, status, priority,
	start_date, end_date, COALESCE(assigned_to::text, ''), created_at, updated_at`

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	t := &entity.Task{}
	var status, priority string
	if err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &status, &priority,
		&t.StartDate, &t.EndDate, &t.AssignedTo, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Status = entity.TaskStatus(status)
	t.Priority = entity.TaskPriority(priority)
	return t, nil
}

// assignee maps an empty assignment to NULL.
func assignee(id string) (*uuid.UUID, error) {
	if id == "" {
		return nil, nil
	}
	u, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	pid, err := parseID(t.ProjectID)
	if err != nil {
		return err
	}
	aid, err := assignee(t.AssignedTo)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (project_id, title, description, status, priority, start_date, end_date, assigned_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id::text, created_at, updated_at
	`, pid, t.Title, t.Description, string(t.Status), string(t.Priority), t.StartDate, t.EndDate, aid)

	return translate(row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt))
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	tid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	t, err := scanTask(r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, tid))
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]entity.Task, error) {
	pid, err := parseID(projectID)
	if err != nil {
		return []entity.Task{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE project_id = $1
		ORDER BY created_at ASC
	`, pid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *TaskRepository) StatusesByProjects(ctx context.Context, projectIDs []string) (map[string][]entity.TaskStatus, error) {
	out := make(map[string][]entity.TaskStatus, len(projectIDs))
	ids := make([]string, 0, len(projectIDs))
	for _, id := range projectIDs {
		if u, err := uuid.Parse(id); err == nil {
			ids = append(ids, u.String())
		}
	}
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT project_id::text, status FROM tasks WHERE project_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var pid, status string
		if err := rows.Scan(&pid, &status); err != nil {
			return nil, err
		}
		out[pid] = append(out[pid], entity.TaskStatus(status))
	}
	return out, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	tid, err := parseID(t.ID)
	if err != nil {
		return err
	}
	aid, err := assignee(t.AssignedTo)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, priority = $4, start_date = $5, end_date = $6,
			assigned_to = $7, updated_at = now()
		WHERE id = $8
		RETURNING updated_at
	`, t.Title, t.Description, string(t.Status), string(t.Priority), t.StartDate, t.EndDate, aid, tid)

	return translate(row.Scan(&t.UpdatedAt))
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	tid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, tid)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	pid, err := parseID(projectID)
	if err != nil {
		return 0, nil
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE project_id = $1`, pid)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

var _ repo.TaskRepository = (*TaskRepository)(nil)
