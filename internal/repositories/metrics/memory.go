package metrics

import (
	"context"
	"sort"
	"sync"

	"github.com/dkrasnov/pdfscan/internal/common"
	"github.com/dkrasnov/pdfscan/internal/models"
	"github.com/dkrasnov/pdfscan/internal/repositories/paging"
)

// MemoryRepository keeps metrics in process memory. All data is lost on
// restart, and no retention expiry applies.
type MemoryRepository struct {
	mu      sync.RWMutex
	metrics []*models.Metric
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Store(ctx context.Context, metric *models.Metric) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *metric
	if metric.Metadata != nil {
		cp.Metadata = make(map[string]string, len(metric.Metadata))
		for k, v := range metric.Metadata {
			cp.Metadata[k] = v
		}
	}
	r.metrics = append(r.metrics, &cp)
	return nil
}

func (r *MemoryRepository) matching(f Filter) []*models.Metric {
	matched := []*models.Metric{}
	for _, m := range r.metrics {
		if f.Operation != "" && m.Operation != f.Operation {
			continue
		}
		if f.DocumentID != "" && m.DocumentID != f.DocumentID {
			continue
		}
		if !f.Start.IsZero() && m.Timestamp.Before(f.Start) {
			continue
		}
		if !f.End.IsZero() && m.Timestamp.After(f.End) {
			continue
		}
		cp := *m
		matched = append(matched, &cp)
	}
	return matched
}

func (r *MemoryRepository) Query(ctx context.Context, f Filter, limit, offset int) ([]*models.Metric, error) {
	limit, offset = paging.Clamp(limit, offset)

	r.mu.RLock()
	matched := r.matching(f)
	r.mu.RUnlock()

	// timestamp DESC, id DESC: same ordering the ClickHouse backend uses.
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	if offset >= len(matched) {
		return []*models.Metric{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *MemoryRepository) AverageDuration(ctx context.Context, f Filter) (float64, error) {
	r.mu.RLock()
	matched := r.matching(f)
	r.mu.RUnlock()

	if len(matched) == 0 {
		return 0, common.ErrNoData
	}

	var sum float64
	for _, m := range matched {
		sum += m.DurationMS
	}
	return sum / float64(len(matched)), nil
}
