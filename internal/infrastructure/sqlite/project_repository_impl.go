package sqlite

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oksasatya/planify/internal/domain/entity"
	repo "github.com/oksasatya/planify/internal/domain/repository"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func encodeStack(stack []string) string {
	if stack == nil {
		stack = []string{}
	}
	b, _ := json.Marshal(stack)
	return string(b)
}

func decodeStack(s string) []string {
	out := []string{}
	if s != "" {
		_ = json.Unmarshal([]byte(s), &out)
	}
	return out
}

func toProject(m projectModel) entity.Project {
	return entity.Project{
		ID:          m.ID,
		Owner:       m.Owner,
		Title:       m.Title,
		Description: m.Description,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		TechStack:   decodeStack(m.TechStack),
		Pinned:      m.Pinned,
		EmailAlerts: m.EmailAlerts,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	now := time.Now().UTC()
	m := projectModel{
		ID:          uuid.NewString(),
		Owner:       p.Owner,
		Title:       p.Title,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		TechStack:   encodeStack(p.TechStack),
		Pinned:      p.Pinned,
		EmailAlerts: p.EmailAlerts,
		Notes:       p.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	p.ID, p.CreatedAt, p.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	var m projectModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	p := toProject(m)
	return &p, nil
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Project, error) {
	var rows []projectModel
	err := r.db.WithContext(ctx).
		Where("owner = ?", ownerID).
		Order("pinned DESC").
		Order("updated_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Project, len(rows))
	for i, m := range rows {
		out[i] = toProject(m)
	}
	return out, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	p.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&projectModel{}).Where("id = ?", p.ID).Updates(map[string]any{
		"title":        p.Title,
		"description":  p.Description,
		"start_date":   p.StartDate,
		"end_date":     p.EndDate,
		"tech_stack":   encodeStack(p.TechStack),
		"pinned":       p.Pinned,
		"email_alerts": p.EmailAlerts,
		"notes":        p.Notes,
		"updated_at":   p.UpdatedAt,
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&projectModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

var _ repo.ProjectRepository = (*ProjectRepository)(nil)
