package helpers

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// projectsMapping keeps owner exact-matchable through owner.keyword.
const projectsMapping = `{
  "mappings": {
    "properties": {
      "owner":       {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "title":       {"type": "text"},
      "description": {"type": "text"},
      "techStack":   {"type": "text"},
      "notes":       {"type": "text"},
      "pinned":      {"type": "boolean"},
      "updatedAt":   {"type": "date"}
    }
  }
}`

// NewESClient creates an Elasticsearch client with optional basic auth.
// No addresses means search is disabled and a nil client is returned.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	if len(addrs) == 0 {
		return nil, nil
	}
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

// EnsureProjectsIndex creates the projects index unless it already exists.
func EnsureProjectsIndex(ctx context.Context, es *elasticsearch.Client, index string) error {
	if es == nil || index == "" {
		return nil
	}
	exists, err := esapi.IndicesExistsRequest{Index: []string{index}}.Do(ctx, es)
	if err != nil {
		return err
	}
	_ = exists.Body.Close()
	if exists.StatusCode == http.StatusOK {
		return nil
	}

	res, err := esapi.IndicesCreateRequest{Index: index, Body: strings.NewReader(projectsMapping)}.Do(ctx, es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	// another instance may have created it in between
	if res.IsError() && !strings.Contains(res.String(), "resource_already_exists_exception") {
		return fmt.Errorf("create index %s: %s", index, res.Status())
	}
	return nil
}
