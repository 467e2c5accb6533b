package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/planify/internal/domain/entity"
)

func (s *ProjectService) searchEnabled() bool {
	return s.ES != nil && s.ESProjectsIndex != ""
}

// indexProject mirrors p into Elasticsearch. Failures are logged, never returned.
func (s *ProjectService) indexProject(ctx context.Context, p *entity.Project) {
	if !s.searchEnabled() {
		return
	}
	doc := map[string]any{
		"owner":       p.Owner,
		"title":       p.Title,
		"description": p.Description,
		"techStack":   p.TechStack,
		"notes":       p.Notes,
		"pinned":      p.Pinned,
		"updatedAt":   p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESProjectsIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.logEntry().WithError(err).WithField("project_id", p.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.logEntry().WithField("status", res.Status()).WithField("project_id", p.ID).Warn("es index response error")
	}
}

func (s *ProjectService) unindexProject(ctx context.Context, id string) {
	if !s.searchEnabled() {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESProjectsIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.logEntry().WithError(err).WithField("project_id", id).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}

// Search runs a multi_match query over the owner's projects and loads the hits from the
// repository, so results always reflect stored state and ownership.
func (s *ProjectService) Search(ctx context.Context, ownerID, q string, size int) ([]entity.Project, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, invalid("q", "is required")
	}
	if !s.searchEnabled() {
		return []entity.Project{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "description", "techStack", "notes"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"owner.keyword": ownerID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESProjectsIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.IsError() {
		s.logEntry().WithField("status", res.Status()).Warn("es search response error")
		return []entity.Project{}, nil
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Project, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		p, err := ownedProject(ctx, s.Projects, h.ID, ownerID)
		if err != nil {
			// stale index entry or someone else's project
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}
