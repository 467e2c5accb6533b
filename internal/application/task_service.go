package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/planify/internal/domain/entity"
	repo "github.com/oksasatya/planify/internal/domain/repository"
)

type TaskService struct {
	Tasks    repo.TaskRepository
	Projects repo.ProjectRepository
	Users    repo.UserRepository
	Logger   *logrus.Logger
}

func NewTaskService(tasks repo.TaskRepository, projects repo.ProjectRepository, users repo.UserRepository, logger *logrus.Logger) *TaskService {
	return &TaskService{Tasks: tasks, Projects: projects, Users: users, Logger: logger}
}

type TaskInput struct {
	ProjectID   string
	Title       string
	Description string
	Status      *entity.TaskStatus
	Priority    *entity.TaskPriority
	StartDate   *time.Time
	EndDate     *time.Time
	AssignedTo  string
}

// ListByProject returns every task of a project. Callers authorize beforehand.
func (s *TaskService) ListByProject(ctx context.Context, projectID string) ([]entity.Task, error) {
	return s.Tasks.ListByProject(ctx, projectID)
}

// Create adds a task under a project owned by requesterID. Ownership is decided before
// the payload is validated.
func (s *TaskService) Create(ctx context.Context, requesterID string, in TaskInput) (*entity.Task, error) {
	if _, err := ownedProject(ctx, s.Projects, in.ProjectID, requesterID); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalid("title", "is required")
	}
	t := entity.NewTask(in.ProjectID, title)
	t.Description = strings.TrimSpace(in.Description)
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, invalid("status", "must be one of: todo, doing, done")
		}
		t.Status = *in.Status
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return nil, invalid("priority", "must be one of: low, medium, high")
		}
		t.Priority = *in.Priority
	}
	t.StartDate = in.StartDate
	t.EndDate = in.EndDate
	assignee, err := s.assignee(ctx, in.AssignedTo)
	if err != nil {
		return nil, err
	}
	t.AssignedTo = assignee

	if err := s.Tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Authorize reports whether requesterID may change task id, without changing it.
func (s *TaskService) Authorize(ctx context.Context, id, requesterID string) error {
	_, err := ownedTask(ctx, s.Tasks, s.Projects, id, requesterID)
	return err
}

func (s *TaskService) Update(ctx context.Context, id, requesterID string, patch entity.TaskPatch) (*entity.Task, error) {
	t, err := ownedTask(ctx, s.Tasks, s.Projects, id, requesterID)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, invalid("title", "is required")
		}
		patch.Title = &title
	}
	if patch.Description != nil {
		desc := strings.TrimSpace(*patch.Description)
		patch.Description = &desc
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, invalid("status", "must be one of: todo, doing, done")
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, invalid("priority", "must be one of: low, medium, high")
	}
	if patch.AssignedTo != nil {
		assignee, err := s.assignee(ctx, *patch.AssignedTo)
		if err != nil {
			return nil, err
		}
		patch.AssignedTo = &assignee
	}
	patch.Apply(t)
	if err := s.Tasks.Update(ctx, t); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id, requesterID string) error {
	t, err := ownedTask(ctx, s.Tasks, s.Projects, id, requesterID)
	if err != nil {
		return err
	}
	if err := s.Tasks.Delete(ctx, t.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}

// assignee resolves an assignedTo value. Empty clears the assignment; anything else must
// name an existing user.
func (s *TaskService) assignee(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || s.Users == nil {
		return id, nil
	}
	if _, err := s.Users.GetByID(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", invalid("assignedTo", "must reference an existing user")
		}
		return "", err
	}
	return id, nil
}
