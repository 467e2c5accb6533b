package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oksasatya/planify/internal/domain/entity"
	repo "github.com/oksasatya/planify/internal/domain/repository"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func toTask(m taskModel) entity.Task {
	return entity.Task{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Title:       m.Title,
		Description: m.Description,
		Status:      entity.TaskStatus(m.Status),
		Priority:    entity.TaskPriority(m.Priority),
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		AssignedTo:  m.AssignedTo,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	now := time.Now().UTC()
	m := taskModel{
		ID:          uuid.NewString(),
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		AssignedTo:  t.AssignedTo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	t.ID, t.CreatedAt, t.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	var m taskModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	t := toTask(m)
	return &t, nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]entity.Task, error) {
	var rows []taskModel
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Task, len(rows))
	for i, m := range rows {
		out[i] = toTask(m)
	}
	return out, nil
}

func (r *TaskRepository) StatusesByProjects(ctx context.Context, projectIDs []string) (map[string][]entity.TaskStatus, error) {
	out := make(map[string][]entity.TaskStatus, len(projectIDs))
	if len(projectIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		ProjectID string
		Status    string
	}
	err := r.db.WithContext(ctx).Model(&taskModel{}).
		Select("project_id, status").
		Where("project_id IN ?", projectIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ProjectID] = append(out[row.ProjectID], entity.TaskStatus(row.Status))
	}
	return out, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	t.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&taskModel{}).Where("id = ?", t.ID).Updates(map[string]any{
		"title":       t.Title,
		"description": t.Description,
		"status":      string(t.Status),
		"priority":    string(t.Priority),
		"start_date":  t.StartDate,
		"end_date":    t.EndDate,
		"assigned_to": t.AssignedTo,
		"updated_at":  t.UpdatedAt,
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&taskModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&taskModel{})
	return res.RowsAffected, res.Error
}

var _ repo.TaskRepository = (*TaskRepository)(nil)
