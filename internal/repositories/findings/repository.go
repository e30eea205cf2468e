// Package findings stores scan findings behind a backend-agnostic
// repository interface.
package findings

import (
	"context"

	"github.com/dkrasnov/pdfscan/internal/models"
)

// Page bundles one page of findings with its pagination metadata.
type Page struct {
	Items  []*models.Finding `json:"items"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
	Total  int               `json:"total"`
}

// Returned is the number of rows actually in this page.
func (p *Page) Returned() int { return len(p.Items) }

// Repository persists findings. Findings are immutable once stored and
// only removed as part of whole-document deletion.
type Repository interface {
	// Store persists a finding.
	Store(ctx context.Context, finding *models.Finding) error

	// GetByDocument returns the document's findings ordered by
	// confidence descending.
	GetByDocument(ctx context.Context, documentID string) ([]*models.Finding, error)

	// ListAll returns a page of findings, optionally filtered by type.
	// An empty typeFilter matches everything.
	ListAll(ctx context.Context, limit, offset int, typeFilter models.FindingType) (*Page, error)

	// CountByDocument returns the number of findings for a document.
	CountByDocument(ctx context.Context, documentID string) (int, error)
}
