package application

import (
	"context"
	"errors"

	"github.com/oksasatya/planify/internal/domain/entity"
	repo "github.com/oksasatya/planify/internal/domain/repository"
)

// ownedProject resolves a project and checks it belongs to requesterID.
// Existence is always decided before ownership.
func ownedProject(ctx context.Context, projects repo.ProjectRepository, id, requesterID string) (*entity.Project, error) {
	p, err := projects.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.Owner != requesterID {
		return nil, ErrUnauthorized
	}
	return p, nil
}

// ownedTask resolves a task, then its parent project, then checks the project's owner.
func ownedTask(ctx context.Context, tasks repo.TaskRepository, projects repo.ProjectRepository, id, requesterID string) (*entity.Task, error) {
	t, err := tasks.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	if _, err := ownedProject(ctx, projects, t.ProjectID, requesterID); err != nil {
		return nil, err
	}
	return t, nil
}
