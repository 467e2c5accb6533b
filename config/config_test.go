package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("STORE_DRIVER", "")
	cfg := Load()
	if cfg.Port != "5000" {
		t.Fatalf("unexpected default port: %s", cfg.Port)
	}
	if cfg.MongoURI != "mongodb://localhost:27017/planify" {
		t.Fatalf("unexpected default mongo uri: %s", cfg.MongoURI)
	}
	if cfg.StoreDriver != DriverMongo {
		t.Fatalf("unexpected default driver: %s", cfg.StoreDriver)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_URI", "mongodb://db:27017/x")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("JWT_ACCESS_TTL", "90m")
	t.Setenv("AUTH_RATE_LIMIT", "not-a-number")
	cfg := Load()
	if cfg.Port != "9090" || cfg.MongoURI != "mongodb://db:27017/x" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.StoreDriver != DriverSQLite {
		t.Fatalf("driver should be lowercased, got %s", cfg.StoreDriver)
	}
	if cfg.AccessTTL != 90*time.Minute {
		t.Fatalf("unexpected ttl: %v", cfg.AccessTTL)
	}
	if cfg.AuthRateLimit != 20 {
		t.Fatalf("invalid int should fall back to default, got %d", cfg.AuthRateLimit)
	}
}

func TestSplitLists(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test, ,http://b.test ", ElasticsearchAddrs: ""}
	origins := cfg.CORSOrigins()
	if len(origins) != 2 || origins[0] != "http://a.test" || origins[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", origins)
	}
	if addrs := cfg.ESAddrs(); len(addrs) != 0 {
		t.Fatalf("expected no es addrs, got %v", addrs)
	}
}
