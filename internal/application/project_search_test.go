package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/oksasatya/planify/pkg/helpers"
)

// fakeES answers just enough of the Elasticsearch API for indexing and search.
type fakeES struct {
	mu       sync.Mutex
	indexed  map[string]bool
	lastBody string
	hits     []string
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	f.mu.Lock()
	defer f.mu.Unlock()

	body, _ := io.ReadAll(r.Body)
	switch {
	case strings.HasSuffix(r.URL.Path, "/_search"):
		f.lastBody = string(body)
		hits := make([]map[string]any, len(f.hits))
		for i, id := range f.hits {
			hits[i] = map[string]any{"_id": id}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"hits": map[string]any{"hits": hits}})
	case strings.Contains(r.URL.Path, "/_doc/"):
		id := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		if r.Method == http.MethodDelete {
			delete(f.indexed, id)
		} else {
			f.indexed[id] = true
		}
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, `{"result":"ok"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprint(w, `{}`)
	}
}

func TestSearchLoadsOwnedHits(t *testing.T) {
	fake := &fakeES{indexed: map[string]bool{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	es, err := helpers.NewESClient([]string{srv.URL}, "", "")
	if err != nil {
		t.Fatalf("es client: %v", err)
	}

	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "A", "a@example.com")
	b := env.user(t, "B", "b@example.com")
	svc := NewProjectService(env.projects, env.tasks, nil, helpers.NewNopLogger(), es, "projects")

	mine, err := svc.Create(ctx, a.ID, ProjectInput{Title: "React dashboard", TechStack: []string{"React"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	theirs, _ := svc.Create(ctx, b.ID, ProjectInput{Title: "React native"})
	if !fake.indexed[mine.ID] || !fake.indexed[theirs.ID] {
		t.Fatalf("projects not indexed: %v", fake.indexed)
	}

	fake.hits = []string{theirs.ID, "stale-id", mine.ID}
	got, err := svc.Search(ctx, a.ID, "react", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].ID != mine.ID {
		t.Fatalf("want only the owner's project, got %+v", got)
	}
	if !strings.Contains(fake.lastBody, a.ID) || !strings.Contains(fake.lastBody, `"size":10`) {
		t.Fatalf("query missing owner filter or default size: %s", fake.lastBody)
	}

	if err := svc.Delete(ctx, mine.ID, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if fake.indexed[mine.ID] {
		t.Fatal("deleted project still indexed")
	}
}

func TestSearchValidationAndDisabled(t *testing.T) {
	env := newTestEnv(t)
	svc := env.projectService()
	if _, err := svc.Search(context.Background(), "u", "   ", 5); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank query: want ErrValidation, got %v", err)
	}
	got, err := svc.Search(context.Background(), "u", "react", 5)
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("disabled search must return an empty list: %v %v", got, err)
	}
}
