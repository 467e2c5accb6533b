package repository

import (
	"context"

	"github.com/oksasatya/planify/internal/domain/entity"
)

// TaskRepository persists tasks. It performs no authorization.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]entity.Task, error)
	// StatusesByProjects returns the task statuses of every listed project keyed by project id.
	StatusesByProjects(ctx context.Context, projectIDs []string) (map[string][]entity.TaskStatus, error)
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
}
