package findings

import (
	"context"
	"sort"
	"sync"

	"github.com/dkrasnov/pdfscan/internal/models"
	"github.com/dkrasnov/pdfscan/internal/repositories/paging"
)

// MemoryRepository keeps findings in process memory. All data is lost
// on restart.
type MemoryRepository struct {
	mu       sync.RWMutex
	findings []*models.Finding
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Store(ctx context.Context, finding *models.Finding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *finding
	r.findings = append(r.findings, &cp)
	return nil
}

func (r *MemoryRepository) GetByDocument(ctx context.Context, documentID string) ([]*models.Finding, error) {
	r.mu.RLock()
	matched := []*models.Finding{}
	for _, f := range r.findings {
		if f.DocumentID == documentID {
			cp := *f
			matched = append(matched, &cp)
		}
	}
	r.mu.RUnlock()

	// confidence DESC, id ASC: same ordering the ClickHouse backend uses.
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Confidence == matched[j].Confidence {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].Confidence > matched[j].Confidence
	})
	return matched, nil
}

func (r *MemoryRepository) ListAll(ctx context.Context, limit, offset int, typeFilter models.FindingType) (*Page, error) {
	limit, offset = paging.Clamp(limit, offset)

	r.mu.RLock()
	matched := []*models.Finding{}
	for _, f := range r.findings {
		if typeFilter != "" && f.Type != typeFilter {
			continue
		}
		cp := *f
		matched = append(matched, &cp)
	}
	r.mu.RUnlock()

	// (document_id, finding_type, id): the ClickHouse table order key.
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.DocumentID != b.DocumentID {
			return a.DocumentID < b.DocumentID
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.ID < b.ID
	})

	total := len(matched)
	if offset >= total {
		return &Page{Items: []*models.Finding{}, Limit: limit, Offset: offset, Total: total}, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return &Page{Items: matched[offset:end], Limit: limit, Offset: offset, Total: total}, nil
}

func (r *MemoryRepository) CountByDocument(ctx context.Context, documentID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, f := range r.findings {
		if f.DocumentID == documentID {
			count++
		}
	}
	return count, nil
}
