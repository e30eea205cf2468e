// Package repotest holds a backend-agnostic contract suite. Every
// repository backend must pass it unchanged; this is what keeps the
// transient and durable backends interchangeable.
package repotest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrasnov/pdfscan/internal/common"
	"github.com/dkrasnov/pdfscan/internal/models"
	"github.com/dkrasnov/pdfscan/internal/repositories/documents"
	"github.com/dkrasnov/pdfscan/internal/repositories/findings"
	"github.com/dkrasnov/pdfscan/internal/repositories/metrics"
)

// indexOf returns the position of id within docs, or -1.
func indexOf(docs []*models.Document, id string) int {
	for i, d := range docs {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// RunDocumentSuite verifies the document repository contract. Fixture
// rows use fresh ids, so the suite tolerates pre-existing data in
// shared databases.
func RunDocumentSuite(t *testing.T, repo documents.Repository) {
	t.Helper()
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	older := models.NewDocument("older.pdf", 100)
	older.UploadTime = base.Add(-2 * time.Minute)
	newer := models.NewDocument("newer.pdf", 200)
	newer.UploadTime = base.Add(-1 * time.Minute)

	require.NoError(t, repo.Store(ctx, older))
	require.NoError(t, repo.Store(ctx, newer))

	t.Run("get roundtrip", func(t *testing.T) {
		got, err := repo.Get(ctx, older.ID)
		require.NoError(t, err)
		assert.Equal(t, older.ID, got.ID)
		assert.Equal(t, "older.pdf", got.Filename)
		assert.Equal(t, models.StatusPending, got.Status)
		assert.Equal(t, int64(100), got.FileSize)
		assert.WithinDuration(t, older.UploadTime, got.UploadTime, time.Millisecond)

		again, err := repo.Get(ctx, older.ID)
		require.NoError(t, err)
		assert.Equal(t, got, again, "repeated reads must be identical")
	})

	t.Run("get absent", func(t *testing.T) {
		_, err := repo.Get(ctx, uuid.NewString())
		assert.True(t, errors.Is(err, common.ErrNotFound))
	})

	t.Run("list newest first", func(t *testing.T) {
		all, err := repo.List(ctx, 1000, 0)
		require.NoError(t, err)

		iNew, iOld := indexOf(all, newer.ID), indexOf(all, older.ID)
		require.GreaterOrEqual(t, iNew, 0)
		require.GreaterOrEqual(t, iOld, 0)
		assert.Less(t, iNew, iOld, "newer document must come first")
	})

	t.Run("status lifecycle", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, newer.ID, models.StatusProcessing, ""))
		require.NoError(t, repo.UpdateStatus(ctx, newer.ID, models.StatusFailed, "extraction failed"))

		got, err := repo.Get(ctx, newer.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusFailed, got.Status)
		assert.Equal(t, "extraction failed", got.ErrorMessage)

		assert.Error(t, repo.UpdateStatus(ctx, newer.ID, models.StatusProcessing, ""),
			"terminal state must be final")
	})
}

// RunFindingSuite verifies the finding repository contract. The type
// filter check uses a run-unique tag so totals are exact even on a
// shared database.
func RunFindingSuite(t *testing.T, repo findings.Repository) {
	t.Helper()
	ctx := context.Background()

	docID := uuid.NewString()
	runType := models.FindingType("parity-" + uuid.NewString()[:8])
	otherType := models.FindingType("parity-" + uuid.NewString()[:8])

	low := models.NewFinding(docID, runType, "page 2", 0.4)
	high := models.NewFinding(docID, runType, "page 1", 0.9)
	other := models.NewFinding(docID, otherType, "page 3", 1.0)
	for _, f := range []*models.Finding{low, high, other} {
		require.NoError(t, repo.Store(ctx, f))
	}

	t.Run("by document ordered by confidence", func(t *testing.T) {
		got, err := repo.GetByDocument(ctx, docID)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, other.ID, got[0].ID)
		assert.Equal(t, high.ID, got[1].ID)
		assert.Equal(t, low.ID, got[2].ID)
	})

	t.Run("count by document", func(t *testing.T) {
		n, err := repo.CountByDocument(ctx, docID)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		zero, err := repo.CountByDocument(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Equal(t, 0, zero)
	})

	t.Run("list with type filter", func(t *testing.T) {
		page, err := repo.ListAll(ctx, 5, 0, runType)
		require.NoError(t, err)
		assert.Equal(t, 2, page.Total)
		assert.Equal(t, 2, page.Returned())
		assert.Equal(t, 5, page.Limit)
		for _, f := range page.Items {
			assert.Equal(t, runType, f.Type)
		}
	})

	t.Run("pagination past the end", func(t *testing.T) {
		page, err := repo.ListAll(ctx, 5, 1000000, runType)
		require.NoError(t, err)
		assert.Equal(t, 2, page.Total)
		assert.Equal(t, 0, page.Returned())
	})
}

// RunMetricsSuite verifies the metrics repository contract using a
// run-unique operation name.
func RunMetricsSuite(t *testing.T, repo metrics.Repository) {
	t.Helper()
	ctx := context.Background()

	op := "parity-" + uuid.NewString()[:8]
	base := time.Now().UTC().Truncate(time.Millisecond).Add(-time.Hour)

	slow := models.NewMetric(op, 0, uuid.NewString(), map[string]string{"k": "v"})
	slow.DurationMS = 300
	slow.Timestamp = base
	fast := models.NewMetric(op, 0, "", nil)
	fast.DurationMS = 100
	fast.Timestamp = base.Add(time.Minute)

	require.NoError(t, repo.Store(ctx, slow))
	require.NoError(t, repo.Store(ctx, fast))

	t.Run("query newest first", func(t *testing.T) {
		got, err := repo.Query(ctx, metrics.Filter{Operation: op}, 10, 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, fast.ID, got[0].ID)
		assert.Equal(t, slow.ID, got[1].ID)
	})

	t.Run("time window", func(t *testing.T) {
		got, err := repo.Query(ctx, metrics.Filter{
			Operation: op,
			Start:     base.Add(30 * time.Second),
		}, 10, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, fast.ID, got[0].ID)
	})

	t.Run("average", func(t *testing.T) {
		avg, err := repo.AverageDuration(ctx, metrics.Filter{Operation: op})
		require.NoError(t, err)
		assert.InDelta(t, 200.0, avg, 0.001)
	})

	t.Run("average without data", func(t *testing.T) {
		_, err := repo.AverageDuration(ctx, metrics.Filter{Operation: "parity-" + uuid.NewString()[:8]})
		assert.True(t, errors.Is(err, common.ErrNoData))
	})
}
