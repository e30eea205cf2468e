package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr":       "www.example:9000",
		"backend":             "clickhouse",
		"clickhouse_addr":     "ch.internal:9000",
		"clickhouse_database": "scans",
		"clickhouse_user":     "user",
		"clickhouse_password": "password",
		"storage_op_timeout":  "15s",
		"max_upload_size":     1048576,
		"temp_dir":            "/var/tmp/scans",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddr)
		assert.Equal(t, BackendClickHouse, cfg.Backend)
		assert.Equal(t, "ch.internal:9000", cfg.ClickHouseAddr)
		assert.Equal(t, "scans", cfg.ClickHouseDatabase)
		assert.Equal(t, "user", cfg.ClickHouseUser)
		assert.Equal(t, "password", cfg.ClickHousePassword)
		assert.Equal(t, 15*time.Second, cfg.StorageOpTimeout)
		assert.Equal(t, int64(1048576), cfg.MaxUploadSize)
		assert.Equal(t, "/var/tmp/scans", cfg.TempDir)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			EndpointAddr:     "defaults:1234",
			Backend:          BackendMemory,
			StorageOpTimeout: 2 * time.Second,
			MaxUploadSize:    42,
			TempDir:          "/tmp/x",
		}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddr)
		assert.Equal(t, BackendMemory, cfg.Backend)
		assert.Equal(t, 2*time.Second, cfg.StorageOpTimeout)
		assert.Equal(t, int64(42), cfg.MaxUploadSize)
		assert.Equal(t, "/tmp/x", cfg.TempDir)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
