// Package repomanager composes a consistent set of repository backends,
// selected once at process start and injected everywhere. Backends are
// never mixed within one running instance.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkrasnov/pdfscan/internal/repositories/documents"
	"github.com/dkrasnov/pdfscan/internal/repositories/findings"
	"github.com/dkrasnov/pdfscan/internal/repositories/metrics"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() *sql.DB
	Documents() documents.Repository
	Findings() findings.Repository
	Metrics() metrics.Repository
	Close() error
}
