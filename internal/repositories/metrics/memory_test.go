package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrasnov/pdfscan/internal/common"
	"github.com/dkrasnov/pdfscan/internal/models"
)

func metricAt(operation string, durationMS float64, ts time.Time, documentID string) *models.Metric {
	m := models.NewMetric(operation, 0, documentID, nil)
	m.DurationMS = durationMS
	m.Timestamp = ts
	return m
}

func TestMemory_QueryFiltersAndOrder(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	early := metricAt(models.OpUpload, 10, base, "doc-1")
	late := metricAt(models.OpUpload, 20, base.Add(time.Hour), "doc-2")
	scan := metricAt(models.OpScan, 99, base.Add(30*time.Minute), "doc-1")
	for _, m := range []*models.Metric{early, late, scan} {
		require.NoError(t, r.Store(ctx, m))
	}

	got, err := r.Query(ctx, Filter{Operation: models.OpUpload}, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, late.ID, got[0].ID, "newest first")
	assert.Equal(t, early.ID, got[1].ID)

	byDoc, err := r.Query(ctx, Filter{DocumentID: "doc-1"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, byDoc, 2)

	window, err := r.Query(ctx, Filter{Start: base.Add(15 * time.Minute), End: base.Add(45 * time.Minute)}, 10, 0)
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, scan.ID, window[0].ID)
}

func TestMemory_QueryPagination(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, r.Store(ctx, metricAt(models.OpScan, float64(i), base.Add(time.Duration(i)*time.Minute), "")))
	}

	page, err := r.Query(ctx, Filter{}, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 2.0, page[0].DurationMS)
	assert.Equal(t, 1.0, page[1].DurationMS)

	empty, err := r.Query(ctx, Filter{}, 2, 50)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemory_AverageDuration(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, r.Store(ctx, metricAt(models.OpUpload, 10, now, "")))
	require.NoError(t, r.Store(ctx, metricAt(models.OpUpload, 30, now, "")))
	require.NoError(t, r.Store(ctx, metricAt(models.OpScan, 1000, now, "")))

	avg, err := r.AverageDuration(ctx, Filter{Operation: models.OpUpload})
	require.NoError(t, err)
	assert.Equal(t, 20.0, avg)
}

func TestMemory_AverageDurationNoData(t *testing.T) {
	r := NewMemoryRepository()

	_, err := r.AverageDuration(context.Background(), Filter{Operation: models.OpUpload})
	assert.True(t, errors.Is(err, common.ErrNoData), "empty set must be ErrNoData, not zero")
}

func TestMemory_StoreCopiesMetadata(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	m := models.NewMetric(models.OpScan, time.Second, "doc-1", map[string]string{"k": "v"})
	require.NoError(t, r.Store(ctx, m))
	m.Metadata["k"] = "mutated"

	got, err := r.Query(ctx, Filter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "v", got[0].Metadata["k"])
}
