package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dkrasnov/pdfscan/internal/flagx"
	"github.com/dkrasnov/pdfscan/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "5s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config
// struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr       string         `json:"endpoint_addr"`
	Backend            string         `json:"backend"`
	ClickHouseAddr     string         `json:"clickhouse_addr"`
	ClickHouseDatabase string         `json:"clickhouse_database"`
	ClickHouseUser     string         `json:"clickhouse_user"`
	ClickHousePassword string         `json:"clickhouse_password"`
	StorageOpTimeout   timex.Duration `json:"storage_op_timeout"`
	MaxUploadSize      int64          `json:"max_upload_size"`
	TempDir            string         `json:"temp_dir"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The JSON file path is taken from the -c or -config command-line flags.
// If neither is set, no JSON file is loaded and the Config is left as is.
// If the file cannot be read or contains invalid JSON, the function panics.
//
// The caller is expected to merge these values with defaults and
// command-line flags as part of the full configuration process.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.Backend = c.Backend
	config.ClickHouseAddr = c.ClickHouseAddr
	config.ClickHouseDatabase = c.ClickHouseDatabase
	config.ClickHouseUser = c.ClickHouseUser
	config.ClickHousePassword = c.ClickHousePassword
	config.StorageOpTimeout = time.Duration(c.StorageOpTimeout.Duration)
	config.MaxUploadSize = c.MaxUploadSize
	config.TempDir = c.TempDir
}
