// Package metrics stores operation timing metrics behind a
// backend-agnostic repository interface.
package metrics

import (
	"context"
	"time"

	"github.com/dkrasnov/pdfscan/internal/models"
)

// Filter narrows a metrics query. Zero-valued fields are ignored.
type Filter struct {
	Operation  string
	DocumentID string
	Start      time.Time
	End        time.Time
}

// Repository persists metrics. Metrics are immutable; retention expiry
// is a backend concern and is invisible at this interface.
type Repository interface {
	// Store persists a metric.
	Store(ctx context.Context, metric *models.Metric) error

	// Query returns matching metrics ordered by timestamp descending.
	Query(ctx context.Context, f Filter, limit, offset int) ([]*models.Metric, error)

	// AverageDuration returns the mean duration over the matching
	// metrics, or common.ErrNoData when nothing matches.
	AverageDuration(ctx context.Context, f Filter) (float64, error)
}
