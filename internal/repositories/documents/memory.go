package documents

import (
	"context"
	"sort"
	"sync"

	"github.com/dkrasnov/pdfscan/internal/common"
	"github.com/dkrasnov/pdfscan/internal/models"
	"github.com/dkrasnov/pdfscan/internal/repositories/paging"
)

// MemoryRepository keeps documents in process memory. All data is lost
// on restart; that is the documented contract of the transient backend.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[string]*models.Document
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: make(map[string]*models.Document)}
}

func (r *MemoryRepository) Store(ctx context.Context, doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, id string, status models.DocumentStatus, errorMessage string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return common.ErrNotFound
	}
	if err := models.ValidateTransition(doc.Status, status, errorMessage); err != nil {
		return err
	}
	doc.Status = status
	doc.ErrorMessage = errorMessage
	return nil
}

func (r *MemoryRepository) List(ctx context.Context, limit, offset int) ([]*models.Document, error) {
	limit, offset = paging.Clamp(limit, offset)

	r.mu.RLock()
	all := make([]*models.Document, 0, len(r.docs))
	for _, d := range r.docs {
		cp := *d
		all = append(all, &cp)
	}
	r.mu.RUnlock()

	// upload_time DESC, id DESC: same ordering the ClickHouse backend uses.
	sort.Slice(all, func(i, j int) bool {
		if all[i].UploadTime.Equal(all[j].UploadTime) {
			return all[i].ID > all[j].ID
		}
		return all[i].UploadTime.After(all[j].UploadTime)
	})

	if offset >= len(all) {
		return []*models.Document{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
