package config

import (
	"flag"
	"os"
	"time"

	"github.com/dkrasnov/pdfscan/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-b string   storage backend, "memory" or "clickhouse"
//	-d string   ClickHouse address (host:port)
//	-n string   ClickHouse database name
//	-u string   ClickHouse user
//	-p string   ClickHouse password
//	-t int      storage operation timeout, seconds
//	-m int      upload size ceiling, megabytes
//	-w string   temp directory for staged uploads
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - The timeout flag is accepted as an integer in seconds and the size flag
//     as megabytes; both are converted to their runtime representations.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-d", "-n", "-u", "-p", "-t", "-m", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.Backend, "b", config.Backend, "storage backend (memory|clickhouse)")
	fs.StringVar(&config.ClickHouseAddr, "d", config.ClickHouseAddr, "ClickHouse address")
	fs.StringVar(&config.ClickHouseDatabase, "n", config.ClickHouseDatabase, "ClickHouse database")
	fs.StringVar(&config.ClickHouseUser, "u", config.ClickHouseUser, "ClickHouse user")
	fs.StringVar(&config.ClickHousePassword, "p", config.ClickHousePassword, "ClickHouse password")

	storageOpTimeout := fs.Int("t", int(config.StorageOpTimeout.Seconds()), "storage operation timeout (in seconds)")
	maxUploadSize := fs.Int64("m", config.MaxUploadSize/(1024*1024), "upload size limit (in megabytes)")

	fs.StringVar(&config.TempDir, "w", config.TempDir, "temp directory for staged uploads")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.StorageOpTimeout = time.Duration(*storageOpTimeout) * time.Second
	config.MaxUploadSize = *maxUploadSize * 1024 * 1024
}
