// Package documents stores document records behind a backend-agnostic
// repository interface.
package documents

import (
	"context"

	"github.com/dkrasnov/pdfscan/internal/models"
)

// Repository persists documents. Implementations must honor identical
// ordering and pagination semantics so backends stay interchangeable.
type Repository interface {
	// Store persists a new document record.
	Store(ctx context.Context, doc *models.Document) error

	// Get returns the document or common.ErrNotFound.
	Get(ctx context.Context, id string) (*models.Document, error)

	// UpdateStatus transitions the document, enforcing the lifecycle
	// rules (no exit from terminal states, error message iff failed).
	UpdateStatus(ctx context.Context, id string, status models.DocumentStatus, errorMessage string) error

	// List returns documents ordered by upload time descending.
	List(ctx context.Context, limit, offset int) ([]*models.Document, error)
}
