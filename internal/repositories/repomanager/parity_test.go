package repomanager

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dkrasnov/pdfscan/internal/repositories/repotest"
)

func TestMemoryRepositoryManager_Contract(t *testing.T) {
	m := NewMemoryRepositoryManager()
	defer m.Close()

	t.Run("documents", func(t *testing.T) { repotest.RunDocumentSuite(t, m.Documents()) })
	t.Run("findings", func(t *testing.T) { repotest.RunFindingSuite(t, m.Findings()) })
	t.Run("metrics", func(t *testing.T) { repotest.RunMetricsSuite(t, m.Metrics()) })
}

// Needs a running ClickHouse, e.g.
//
//	CLICKHOUSE_ADDR=localhost:9000 go test ./internal/repositories/...
func TestClickHouseRepositoryManager_Contract(t *testing.T) {
	addr := os.Getenv("CLICKHOUSE_ADDR")
	if addr == "" {
		t.Skip("CLICKHOUSE_ADDR not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	m, err := NewClickHouseRepositoryManager(ctx, Options{
		Addr:      addr,
		Database:  envOr("CLICKHOUSE_DB", "default"),
		Username:  envOr("CLICKHOUSE_USER", "default"),
		Password:  os.Getenv("CLICKHOUSE_PASSWORD"),
		OpTimeout: 10 * time.Second,
	})
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.RunMigrations(ctx))

	t.Run("documents", func(t *testing.T) { repotest.RunDocumentSuite(t, m.Documents()) })
	t.Run("findings", func(t *testing.T) { repotest.RunFindingSuite(t, m.Findings()) })
	t.Run("metrics", func(t *testing.T) { repotest.RunMetricsSuite(t, m.Metrics()) })
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
