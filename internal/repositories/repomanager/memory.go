package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkrasnov/pdfscan/internal/repositories/documents"
	"github.com/dkrasnov/pdfscan/internal/repositories/findings"
	"github.com/dkrasnov/pdfscan/internal/repositories/metrics"
)

// MemoryRepositoryManager bundles the transient backends. Everything is
// lost on process restart.
type MemoryRepositoryManager struct {
	documents documents.Repository
	findings  findings.Repository
	metrics   metrics.Repository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		documents: documents.NewMemoryRepository(),
		findings:  findings.NewMemoryRepository(),
		metrics:   metrics.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *MemoryRepositoryManager) Conn() *sql.DB { return nil }

func (m *MemoryRepositoryManager) Documents() documents.Repository { return m.documents }

func (m *MemoryRepositoryManager) Findings() findings.Repository { return m.findings }

func (m *MemoryRepositoryManager) Metrics() metrics.Repository { return m.metrics }

func (m *MemoryRepositoryManager) Close() error { return nil }
