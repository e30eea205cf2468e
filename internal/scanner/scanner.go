// Package scanner detects sensitive data patterns in extracted page text.
package scanner

import "github.com/dkrasnov/pdfscan/internal/models"

// Scanner scans per-page plain text for sensitive data. Pages are
// 1-indexed when reported in finding locations.
//
// Implementations must skip pages they cannot process rather than abort
// the whole scan; only document-level problems are errors.
type Scanner interface {
	// Scan returns one finding candidate per pattern match. Candidates
	// carry an empty DocumentID; the caller binds them to the owning
	// document before storing.
	Scan(pages []string) ([]*models.Finding, error)

	// SupportedTypes lists the finding types this scanner can emit.
	SupportedTypes() []models.FindingType
}
