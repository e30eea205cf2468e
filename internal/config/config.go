// Package config handles configuration for the scan server,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Storage backend selectors.
const (
	BackendMemory     = "memory"
	BackendClickHouse = "clickhouse"
)

// Config holds runtime settings for the pdfscan server.
//
// Fields:
//   - EndpointAddr: bind address for the public HTTP endpoint.
//   - Backend: storage backend, "memory" or "clickhouse".
//   - ClickHouseAddr / ClickHouseDatabase / ClickHouseUser / ClickHousePassword:
//     connection settings for the ClickHouse backend.
//   - StorageOpTimeout: per-operation deadline applied to storage calls.
//   - MaxUploadSize: upload size ceiling in bytes.
//   - TempDir: directory for staging uploaded files during a scan.
type Config struct {
	EndpointAddr       string
	Backend            string
	ClickHouseAddr     string
	ClickHouseDatabase string
	ClickHouseUser     string
	ClickHousePassword string
	StorageOpTimeout   time.Duration
	MaxUploadSize      int64
	TempDir            string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.Backend = BackendMemory
	c.ClickHouseAddr = "127.0.0.1:9000"
	c.ClickHouseDatabase = "pdfscan"
	c.ClickHouseUser = "default"
	c.ClickHousePassword = ""
	c.StorageOpTimeout = 5 * time.Second
	c.MaxUploadSize = 10 * 1024 * 1024
	c.TempDir = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
