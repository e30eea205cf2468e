package documents

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

// ClickHouseRepository stores documents in the documents table,
// partitioned by upload month and ordered by (upload_time, id).
type ClickHouseRepository struct {
	db      dbx.DBTX
	timeout time.Duration
}

func NewClickHouseRepository(db dbx.DBTX, timeout time.Duration) *ClickHouseRepository {
	return &ClickHouseRepository{db: db, timeout: timeout}
}

func (r *ClickHouseRepository) Store(ctx context.Context, doc *models.Document) error {
	ctx, cancel := dbx.WithTimeout(ctx, r.timeout)
	defer cancel()

	query :=
		`INSERT INTO documents (id, filename, upload_time, status, file_size, error_message)
		 VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Filename, doc.UploadTime, string(doc.Status), doc.FileSize, doc.ErrorMessage)
	if err != nil {
		return fmt.Errorf("%w: inserting document: %v", common.ErrStorage, err)
	}
	return nil
}

func (r *ClickHouseRepository) Get(ctx context.Context, id string) (*models.Document, error) {
	ctx, cancel := dbx.WithTimeout(ctx, r.timeout)
	defer cancel()

	query :=
		`SELECT id, filename, upload_time, status, file_size, error_message
		 FROM documents
		 WHERE id = ?`

	doc := &models.Document{}
	var status string
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&doc.ID, &doc.Filename, &doc.UploadTime, &status, &doc.FileSize, &doc.ErrorMessage)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: selecting document: %v", common.ErrStorage, err)
	}
	doc.Status = models.DocumentStatus(status)

	return doc, nil
}

// UpdateStatus reads the current row to enforce transition rules, then
// issues a mutation. One pipeline run owns one document id, so the
// read-then-update race is acceptable (last writer wins).
func (r *ClickHouseRepository) UpdateStatus(ctx context.Context, id string, status models.DocumentStatus, errorMessage string) error {
	doc, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := models.ValidateTransition(doc.Status, status, errorMessage); err != nil {
		return err
	}

	ctx, cancel := dbx.WithTimeout(ctx, r.timeout)
	defer cancel()

	query :=
		`ALTER TABLE documents
		 UPDATE status = ?, error_message = ?
		 WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, string(status), errorMessage, id); err != nil {
		return fmt.Errorf("%w: updating document status: %v", common.ErrStorage, err)
	}
	return nil
}

func (r *ClickHouseRepository) List(ctx context.Context, limit, offset int) ([]*models.Document, error) {
	limit, offset = paging.Clamp(limit, offset)

	ctx, cancel := dbx.WithTimeout(ctx, r.timeout)
	defer cancel()

	query :=
		`SELECT id, filename, upload_time, status, file_size, error_message
		 FROM documents
		 ORDER BY upload_time DESC, id DESC
		 LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: listing documents: %v", common.ErrStorage, err)
	}
	defer rows.Close()

	docs := []*models.Document{}
	for rows.Next() {
		doc := &models.Document{}
		var status string
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.UploadTime, &status, &doc.FileSize, &doc.ErrorMessage); err != nil {
			return nil, fmt.Errorf("%w: scanning document row: %v", common.ErrStorage, err)
		}
		doc.Status = models.DocumentStatus(status)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading document rows: %v", common.ErrStorage, err)
	}
	return docs, nil
}
