package findings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dkrasnov/pdfscan/internal/common"
	"github.com/dkrasnov/pdfscan/internal/dbx"
	"github.com/dkrasnov/pdfscan/internal/models"
	"github.com/dkrasnov/pdfscan/internal/repositories/paging"
)

// ClickHouseRepository stores findings in the findings table, ordered by
// (document_id, finding_type, id).
type ClickHouseRepository struct {
	db      dbx.DBTX
	timeout time.Duration
}

func NewClickHouseRepository(db dbx.DBTX, timeout time.Duration) *ClickHouseRepository {
	return &ClickHouseRepository{db: db, timeout: timeout}
}

func (r *ClickHouseRepository) Store(ctx context.Context, finding *models.Finding) error {
	ctx, cancel := dbx.WithTimeout(ctx, r.timeout)
	defer cancel()

	query :=
		`INSERT INTO findings (id, document_id, finding_type, location, confidence)
		 VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		finding.ID, finding.DocumentID, string(finding.Type), finding.Location, finding.Confidence)
	if err != nil {
		return fmt.Errorf("%w: inserting finding: %v", common.ErrStorage, err)
	}
	return nil
}

func (r *ClickHouseRepository) GetByDocument(ctx context.Context, documentID string) ([]*models.Finding, error) {
	ctx, cancel := dbx.WithTimeout(ctx, r.timeout)
	defer cancel()

	query :=
		`SELECT id, document_id, finding_type, location, confidence
		 FROM findings
		 WHERE document_id = ?
		 ORDER BY confidence DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("%w: selecting findings: %v", common.ErrStorage, err)
	}
	defer rows.Close()

	return scanFindings(rows)
}

func (r *ClickHouseRepository) ListAll(ctx context.Context, limit, offset int, typeFilter models.FindingType) (*Page, error) {
	limit, offset = paging.Clamp(limit, offset)

	ctx, cancel := dbx.WithTimeout(ctx, r.timeout)
	defer cancel()

	where := ""
	args := []any{}
	if typeFilter != "" {
		where = " WHERE finding_type = ?"
		args = append(args, string(typeFilter))
	}

	var total int
	countQuery := `SELECT count() FROM findings` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: counting findings: %v", common.ErrStorage, err)
		}
		total = 0
	}

	query :=
		`SELECT id, document_id, finding_type, location, confidence
		 FROM findings` + where + `
		 ORDER BY document_id, finding_type, id
		 LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listing findings: %v", common.ErrStorage, err)
	}
	defer rows.Close()

	items, err := scanFindings(rows)
	if err != nil {
		return nil, err
	}
	return &Page{Items: items, Limit: limit, Offset: offset, Total: total}, nil
}

func (r *ClickHouseRepository) CountByDocument(ctx context.Context, documentID string) (int, error) {
	ctx, cancel := dbx.WithTimeout(ctx, r.timeout)
	defer cancel()

	var count int
	query := `SELECT count() FROM findings WHERE document_id = ?`
	if err := r.db.QueryRowContext(ctx, query, documentID).Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: counting findings: %v", common.ErrStorage, err)
	}
	return count, nil
}

func scanFindings(rows *sql.Rows) ([]*models.Finding, error) {
	findings := []*models.Finding{}
	for rows.Next() {
		f := &models.Finding{}
		var ftype string
		if err := rows.Scan(&f.ID, &f.DocumentID, &ftype, &f.Location, &f.Confidence); err != nil {
			return nil, fmt.Errorf("%w: scanning finding row: %v", common.ErrStorage, err)
		}
		f.Type = models.FindingType(ftype)
		findings = append(findings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading finding rows: %v", common.ErrStorage, err)
	}
	return findings, nil
}
