package helpers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func TestEnsureProjectsIndex(t *testing.T) {
	var (
		mu      sync.Mutex
		exists  bool
		creates int
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		mu.Lock()
		defer mu.Unlock()
		switch {
		case r.Method == http.MethodHead && r.URL.Path == "/projects":
			if exists {
				w.WriteHeader(http.StatusOK)
			} else {
				w.WriteHeader(http.StatusNotFound)
			}
		case r.Method == http.MethodPut && r.URL.Path == "/projects":
			creates++
			exists = true
			_, _ = w.Write([]byte(`{"acknowledged":true,"index":"projects"}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	es, err := NewESClient([]string{srv.URL}, "", "")
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := EnsureProjectsIndex(context.Background(), es, "projects"); err != nil {
			t.Fatalf("ensure #%d: %v", i, err)
		}
	}
	if creates != 1 {
		t.Fatalf("want one create, got %d", creates)
	}
}

func TestESDisabled(t *testing.T) {
	es, err := NewESClient(nil, "", "")
	if err != nil || es != nil {
		t.Fatalf("want nil client, got %v %v", es, err)
	}
	if err := EnsureProjectsIndex(context.Background(), nil, "projects"); err != nil {
		t.Fatalf("nil client should be a no-op: %v", err)
	}
}
