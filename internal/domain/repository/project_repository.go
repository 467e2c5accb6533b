package repository

import (
	"context"

	"github.com/oksasatya/planify/internal/domain/entity"
)

// ProjectRepository persists projects.
// ListByOwner returns pinned projects first, then by UpdatedAt descending.
type ProjectRepository interface {
	Create(ctx context.Context, p *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Project, error)
	Update(ctx context.Context, p *entity.Project) error
	Delete(ctx context.Context, id string) error
}
