package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("known flags applied, foreign flags ignored", func(t *testing.T) {
		os.Args = []string{"testbin", "-a", ":7070", "-config", "ignored.json", "-w", "/tmp/stage"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Equal(t, ":7070", cfg.EndpointAddr)
		assert.Equal(t, "/tmp/stage", cfg.TempDir)
		assert.Equal(t, BackendMemory, cfg.Backend)
	})

	t.Run("timeout and size converted", func(t *testing.T) {
		os.Args = []string{"testbin", "-t", "12", "-m", "2"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Equal(t, 12*time.Second, cfg.StorageOpTimeout)
		assert.Equal(t, int64(2*1024*1024), cfg.MaxUploadSize)
	})
}
