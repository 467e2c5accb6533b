package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/planify/internal/domain/entity"
	"github.com/oksasatya/planify/internal/domain/progress"
	repo "github.com/oksasatya/planify/internal/domain/repository"
	"github.com/oksasatya/planify/pkg/jobs"
)

// ErrProjectExists stops a queued cleanup from removing the tasks of a live project.
var ErrProjectExists = errors.New("project still exists")

// CleanupPublisher queues a job for the task cleanup worker.
type CleanupPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type ProjectService struct {
	Projects repo.ProjectRepository
	Tasks    repo.TaskRepository
	Cleanup  CleanupPublisher
	Logger   *logrus.Logger

	ES              *elasticsearch.Client
	ESProjectsIndex string
}

func NewProjectService(projects repo.ProjectRepository, tasks repo.TaskRepository, cleanup CleanupPublisher, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *ProjectService {
	return &ProjectService{
		Projects:        projects,
		Tasks:           tasks,
		Cleanup:         cleanup,
		Logger:          logger,
		ES:              es,
		ESProjectsIndex: esIndex,
	}
}

type ProjectInput struct {
	Title       string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	TechStack   []string
	Pinned      *bool
	EmailAlerts *bool
	Notes       *string
}

// List returns the owner's projects, pinned first then most recently updated, each with
// its progress computed from the current task statuses.
func (s *ProjectService) List(ctx context.Context, ownerID string) ([]entity.ProjectView, error) {
	projects, err := s.Projects.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	statuses, err := s.Tasks.StatusesByProjects(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]entity.ProjectView, len(projects))
	for i, p := range projects {
		out[i] = entity.ProjectView{Project: p, Progress: progress.Of(statuses[p.ID])}
	}
	return out, nil
}

func (s *ProjectService) Create(ctx context.Context, ownerID string, in ProjectInput) (*entity.Project, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalid("title", "is required")
	}
	p := entity.NewProject(ownerID, title)
	p.Description = strings.TrimSpace(in.Description)
	p.StartDate = in.StartDate
	p.EndDate = in.EndDate
	if in.TechStack != nil {
		p.TechStack = append([]string{}, in.TechStack...)
	}
	if in.Pinned != nil {
		p.Pinned = *in.Pinned
	}
	if in.EmailAlerts != nil {
		p.EmailAlerts = *in.EmailAlerts
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}
	if err := s.Projects.Create(ctx, p); err != nil {
		return nil, err
	}
	s.indexProject(ctx, p)
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, id, requesterID string) (*entity.Project, error) {
	return ownedProject(ctx, s.Projects, id, requesterID)
}

// Update overwrites only the fields present in patch and returns the stored result.
func (s *ProjectService) Update(ctx context.Context, id, requesterID string, patch entity.ProjectPatch) (*entity.Project, error) {
	p, err := ownedProject(ctx, s.Projects, id, requesterID)
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
	patch.Apply(p)
	if err := s.Projects.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	s.indexProject(ctx, p)
	return p, nil
}

// Delete removes the project and then its tasks. A failed task removal is handed to the
// cleanup queue; if that is impossible the error is returned to the caller.
func (s *ProjectService) Delete(ctx context.Context, id, requesterID string) error {
	p, err := ownedProject(ctx, s.Projects, id, requesterID)
	if err != nil {
		return err
	}
	if err := s.Projects.Delete(ctx, p.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	s.unindexProject(ctx, p.ID)

	n, err := s.Tasks.DeleteByProject(ctx, p.ID)
	if err == nil {
		if s.Logger != nil {
			s.Logger.WithFields(logrus.Fields{"project_id": p.ID, "tasks": n}).Debug("project deleted")
		}
		return nil
	}

	log := s.logEntry().WithError(err).WithField("project_id", p.ID)
	if s.Cleanup == nil {
		log.Error("task cascade failed and no cleanup queue is configured")
		return fmt.Errorf("delete tasks of project %s: %w", p.ID, err)
	}
	job := jobs.TaskCleanup{ProjectID: p.ID, OwnerID: p.Owner, RequestedAt: time.Now().UTC(), Reason: err.Error()}
	if pubErr := s.Cleanup.PublishJSON(ctx, job); pubErr != nil {
		log.WithField("publish_error", pubErr.Error()).Error("task cascade failed and cleanup job could not be queued")
		return fmt.Errorf("delete tasks of project %s: %w", p.ID, errors.Join(err, pubErr))
	}
	log.Warn("task cascade failed, cleanup job queued")
	return nil
}

// PurgeTasks completes a queued cascade. It refuses to touch the tasks of a project that
// still exists.
func (s *ProjectService) PurgeTasks(ctx context.Context, job jobs.TaskCleanup) (int64, error) {
	if job.ProjectID == "" {
		return 0, invalid("project_id", "is required")
	}
	_, err := s.Projects.GetByID(ctx, job.ProjectID)
	if err == nil {
		return 0, fmt.Errorf("purge tasks of %s: %w", job.ProjectID, ErrProjectExists)
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return 0, err
	}
	return s.Tasks.DeleteByProject(ctx, job.ProjectID)
}

func (s *ProjectService) logEntry() *logrus.Entry {
	if s.Logger == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logrus.NewEntry(s.Logger)
}
