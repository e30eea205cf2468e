package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.EndpointAddr, ":8080")
	assert.Equal(t, c.Backend, BackendMemory)
	assert.Equal(t, c.ClickHouseAddr, "127.0.0.1:9000")
	assert.Equal(t, c.ClickHouseDatabase, "pdfscan")
	assert.Equal(t, c.ClickHouseUser, "default")
	assert.Equal(t, c.ClickHousePassword, "")
	assert.Equal(t, c.StorageOpTimeout, 5*time.Second)
	assert.Equal(t, c.MaxUploadSize, int64(10*1024*1024))
	assert.Equal(t, c.TempDir, "")
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, c.EndpointAddr, ":8080")
	assert.Equal(t, c.Backend, BackendMemory)
	assert.Equal(t, c.StorageOpTimeout, 5*time.Second)
	assert.Equal(t, c.MaxUploadSize, int64(10*1024*1024))
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-a", ":9999", "-b", "clickhouse", "-t", "30", "-m", "25"}

	c := LoadConfig()

	assert.Equal(t, ":9999", c.EndpointAddr)
	assert.Equal(t, BackendClickHouse, c.Backend)
	assert.Equal(t, 30*time.Second, c.StorageOpTimeout)
	assert.Equal(t, int64(25*1024*1024), c.MaxUploadSize)
}
