package metrics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dkrasnov/pdfscan/internal/common"
	"github.com/dkrasnov/pdfscan/internal/dbx"
	"github.com/dkrasnov/pdfscan/internal/models"
	"github.com/dkrasnov/pdfscan/internal/repositories/paging"
)

// ClickHouseRepository stores metrics in the metrics table, partitioned
// by month and ordered by (operation, timestamp). Rows expire after the
// retention window via a table TTL; nothing here knows about it.
type ClickHouseRepository struct {
	db      dbx.DBTX
	timeout time.Duration
}

func NewClickHouseRepository(db dbx.DBTX, timeout time.Duration) *ClickHouseRepository {
	return &ClickHouseRepository{db: db, timeout: timeout}
}

func (r *ClickHouseRepository) Store(ctx context.Context, metric *models.Metric) error {
	ctx, cancel := dbx.WithTimeout(ctx, r.timeout)
	defer cancel()

	query :=
		`INSERT INTO metrics (id, operation, duration_ms, timestamp, document_id, metadata)
		 VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		metric.ID, metric.Operation, metric.DurationMS, metric.Timestamp, metric.DocumentID, metric.Metadata)
	if err != nil {
		return fmt.Errorf("%w: inserting metric: %v", common.ErrStorage, err)
	}
	return nil
}

// whereClause builds the filter fragment shared by Query and
// AverageDuration.
func whereClause(f Filter) (string, []any) {
	conds := []string{}
	args := []any{}
	if f.Operation != "" {
		conds = append(conds, "operation = ?")
		args = append(args, f.Operation)
	}
	if f.DocumentID != "" {
		conds = append(conds, "document_id = ?")
		args = append(args, f.DocumentID)
	}
	if !f.Start.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, f.Start)
	}
	if !f.End.IsZero() {
		conds = append(conds, "timestamp <= ?")
		args = append(args, f.End)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *ClickHouseRepository) Query(ctx context.Context, f Filter, limit, offset int) ([]*models.Metric, error) {
	limit, offset = paging.Clamp(limit, offset)

	ctx, cancel := dbx.WithTimeout(ctx, r.timeout)
	defer cancel()

	where, args := whereClause(f)
	query :=
		`SELECT id, operation, duration_ms, timestamp, document_id, metadata
		 FROM metrics` + where + `
		 ORDER BY timestamp DESC, id DESC
		 LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying metrics: %v", common.ErrStorage, err)
	}
	defer rows.Close()

	metrics := []*models.Metric{}
	for rows.Next() {
		m := &models.Metric{}
		if err := rows.Scan(&m.ID, &m.Operation, &m.DurationMS, &m.Timestamp, &m.DocumentID, &m.Metadata); err != nil {
			return nil, fmt.Errorf("%w: scanning metric row: %v", common.ErrStorage, err)
		}
		metrics = append(metrics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading metric rows: %v", common.ErrStorage, err)
	}
	return metrics, nil
}

func (r *ClickHouseRepository) AverageDuration(ctx context.Context, f Filter) (float64, error) {
	ctx, cancel := dbx.WithTimeout(ctx, r.timeout)
	defer cancel()

	where, args := whereClause(f)
	// count() guards the average: avg() over zero rows is NaN.
	query := `SELECT avg(duration_ms), count() FROM metrics` + where

	var avg sql.NullFloat64
	var count uint64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&avg, &count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrNoData
		}
		return 0, fmt.Errorf("%w: averaging metrics: %v", common.ErrStorage, err)
	}
	if count == 0 || !avg.Valid {
		return 0, common.ErrNoData
	}
	return avg.Float64, nil
}
