package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/oksasatya/planify/config"
	"github.com/oksasatya/planify/pkg/helpers"
)

func TestOpenSQLite(t *testing.T) {
	cfg := &config.Config{StoreDriver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "planify.db")}
	s, err := Open(context.Background(), cfg, helpers.NewNopLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = s.Close() }()
	if s.Users == nil || s.Projects == nil || s.Tasks == nil {
		t.Fatalf("repositories not wired: %+v", s)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := &config.Config{StoreDriver: "cassandra"}
	if _, err := Open(context.Background(), cfg, helpers.NewNopLogger()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
