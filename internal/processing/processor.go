// Package processing runs the document intake pipeline: persist the
// document record, stage the file, extract text, scan it and record
// findings and timing metrics.
package processing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dkrasnov/pdfscan/internal/common"
	"github.com/dkrasnov/pdfscan/internal/extract"
	"github.com/dkrasnov/pdfscan/internal/logging"
	"github.com/dkrasnov/pdfscan/internal/models"
	"github.com/dkrasnov/pdfscan/internal/repositories/repomanager"
	"github.com/dkrasnov/pdfscan/internal/scanner"
)

// Result summarizes one completed intake, whatever its outcome. The
// document status tells the caller whether the scan succeeded.
type Result struct {
	DocumentID    string                `json:"document_id"`
	Filename      string                `json:"filename"`
	Status        models.DocumentStatus `json:"status"`
	UploadTime    time.Time             `json:"upload_time"`
	FileSize      int64                 `json:"file_size"`
	FindingsCount int                   `json:"findings_count"`
}

// Processor drives a document from upload to a terminal status.
type Processor struct {
	repos     repomanager.RepositoryManager
	scanner   scanner.Scanner
	extractor extract.Extractor
	logger    logging.Logger
	tempDir   string
}

func NewProcessor(repos repomanager.RepositoryManager, sc scanner.Scanner, ex extract.Extractor, logger logging.Logger, tempDir string) *Processor {
	return &Processor{
		repos:     repos,
		scanner:   sc,
		extractor: ex,
		logger:    logger.With("component", "processor"),
		tempDir:   tempDir,
	}
}

// ProcessUpload runs the full pipeline for one uploaded file. The only
// fatal path is failing to persist the initial document record; every
// later failure marks the document failed and still yields a Result.
func (p *Processor) ProcessUpload(ctx context.Context, filename string, content []byte) (*Result, error) {
	doc := models.NewDocument(filename, int64(len(content)))

	if err := p.repos.Documents().Store(ctx, doc); err != nil {
		return nil, fmt.Errorf("%w: storing document: %v", common.ErrStorage, err)
	}

	log := p.logger.With("document_id", doc.ID)
	log.Info(ctx, "document accepted", "filename", filename, "size", doc.FileSize)

	uploadStart := time.Now()
	path, err := p.saveTemp(filename, content)
	if err != nil {
		log.Error(ctx, "staging upload failed", "error", err)
		return p.fail(ctx, doc, "failed to save uploaded file"), nil
	}
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warn(ctx, "temp file cleanup failed", "path", path, "error", rmErr)
		}
	}()
	p.recordMetric(ctx, models.OpUpload, time.Since(uploadStart), doc.ID, map[string]string{
		"filename": filename,
	})

	if err := p.repos.Documents().UpdateStatus(ctx, doc.ID, models.StatusProcessing, ""); err != nil {
		log.Error(ctx, "status update failed", "error", err)
		return p.fail(ctx, doc, "failed to update document status"), nil
	}
	doc.Status = models.StatusProcessing

	scanStart := time.Now()
	count, scanErr := p.extractAndScan(ctx, doc.ID, path)
	p.recordMetric(ctx, models.OpScan, time.Since(scanStart), doc.ID, map[string]string{
		"findings": fmt.Sprintf("%d", count),
	})

	if scanErr != nil {
		log.Warn(ctx, "scan failed", "error", scanErr)
		return p.fail(ctx, doc, scanErr.Error()), nil
	}

	if err := p.repos.Documents().UpdateStatus(ctx, doc.ID, models.StatusCompleted, ""); err != nil {
		log.Error(ctx, "status update failed", "error", err)
		return p.fail(ctx, doc, "failed to update document status"), nil
	}
	doc.Status = models.StatusCompleted

	log.Info(ctx, "document processed", "findings", count)

	return &Result{
		DocumentID:    doc.ID,
		Filename:      doc.Filename,
		Status:        doc.Status,
		UploadTime:    doc.UploadTime,
		FileSize:      doc.FileSize,
		FindingsCount: count,
	}, nil
}

// saveTemp stages the upload on disk so the extractor can work from a
// file path. The random name avoids collisions between concurrent
// uploads of the same filename.
func (p *Processor) saveTemp(filename string, content []byte) (string, error) {
	f, err := os.CreateTemp(p.tempDir, "upload-*-"+filepath.Base(filename))
	if err != nil {
		return "", err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// extractAndScan pulls page text out of the staged file, runs the
// scanner over it and persists the findings. It returns the number of
// findings stored.
func (p *Processor) extractAndScan(ctx context.Context, docID, path string) (int, error) {
	pages, err := p.extractor.ExtractPages(ctx, path)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrEncrypted):
			return 0, errors.New("document is password protected")
		case errors.Is(err, common.ErrUnreadable):
			return 0, errors.New("document could not be parsed")
		default:
			return 0, err
		}
	}

	found, err := p.scanner.Scan(pages)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrScan, err)
	}

	for i, f := range found {
		f.DocumentID = docID
		if err := p.repos.Findings().Store(ctx, f); err != nil {
			return i, fmt.Errorf("%w: storing finding: %v", common.ErrStorage, err)
		}
	}
	return len(found), nil
}

// fail moves the document to its failed terminal state and builds the
// Result from what is known. A failure to record the failure itself is
// only logged; the caller still gets a well-formed Result.
func (p *Processor) fail(ctx context.Context, doc *models.Document, reason string) *Result {
	if err := p.repos.Documents().UpdateStatus(ctx, doc.ID, models.StatusFailed, reason); err != nil {
		p.logger.Error(ctx, "recording failure state failed", "document_id", doc.ID, "error", err)
	}
	doc.Status = models.StatusFailed
	doc.ErrorMessage = reason

	return &Result{
		DocumentID: doc.ID,
		Filename:   doc.Filename,
		Status:     models.StatusFailed,
		UploadTime: doc.UploadTime,
		FileSize:   doc.FileSize,
	}
}

// recordMetric stores a timing sample. Metrics are best effort and
// never fail the pipeline.
func (p *Processor) recordMetric(ctx context.Context, op string, d time.Duration, docID string, metadata map[string]string) {
	m := models.NewMetric(op, d, docID, metadata)
	if err := p.repos.Metrics().Store(ctx, m); err != nil {
		p.logger.Warn(ctx, "metric store failed", "operation", op, "error", err)
	}
}
