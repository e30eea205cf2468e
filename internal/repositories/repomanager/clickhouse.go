package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/pressly/goose/v3"

	"github.com/dkrasnov/pdfscan/internal/migrations"
	"github.com/dkrasnov/pdfscan/internal/repositories/documents"
	"github.com/dkrasnov/pdfscan/internal/repositories/findings"
	"github.com/dkrasnov/pdfscan/internal/repositories/metrics"
)

// Options describe the ClickHouse connection.
type Options struct {
	Addr     string
	Database string
	Username string
	Password string
	// OpTimeout bounds every storage call issued by the repositories.
	OpTimeout time.Duration
}

// ClickHouseRepositoryManager bundles the durable backends over one
// pooled connection.
type ClickHouseRepositoryManager struct {
	db        *sql.DB
	documents documents.Repository
	findings  findings.Repository
	metrics   metrics.Repository
}

func NewClickHouseRepositoryManager(ctx context.Context, opts Options) (*ClickHouseRepositoryManager, error) {
	db := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{opts.Addr},
		Auth: clickhouse.Auth{
			Database: opts.Database,
			Username: opts.Username,
			Password: opts.Password,
		},
	})
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("clickhouse ping error: %w", err)
	}

	m := &ClickHouseRepositoryManager{
		db:        db,
		documents: documents.NewClickHouseRepository(db, opts.OpTimeout),
		findings:  findings.NewClickHouseRepository(db, opts.OpTimeout),
		metrics:   metrics.NewClickHouseRepository(db, opts.OpTimeout),
	}

	if err := m.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}

func (m *ClickHouseRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("clickhouse"); err != nil {
		return err
	}

	return goose.UpContext(ctx, m.db, ".")
}

func (m *ClickHouseRepositoryManager) Conn() *sql.DB { return m.db }

func (m *ClickHouseRepositoryManager) Documents() documents.Repository { return m.documents }

func (m *ClickHouseRepositoryManager) Findings() findings.Repository { return m.findings }

func (m *ClickHouseRepositoryManager) Metrics() metrics.Repository { return m.metrics }

func (m *ClickHouseRepositoryManager) Close() error { return m.db.Close() }
