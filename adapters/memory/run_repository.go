package memory

import (
	"context"
	"fmt"
	"sync"

	"faqreport/domain/core"
	"faqreport/domain/run"
	"faqreport/ports"
)

// runRepository is an in-memory RunRepository used when no database is
// configured. Manifests live for the lifetime of the process.
type runRepository struct {
	mu    sync.RWMutex
	byID  map[core.RunID]*run.Manifest
	order []core.RunID
}

// NewRunRepository creates an empty in-memory run repository
func NewRunRepository() ports.RunRepository {
	return &runRepository{byID: make(map[core.RunID]*run.Manifest)}
}

func (r *runRepository) Save(ctx context.Context, m *run.Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[m.RunID]; !exists {
		r.order = append(r.order, m.RunID)
	}
	r.byID[m.RunID] = m
	return nil
}

func (r *runRepository) GetByID(ctx context.Context, id core.RunID) (*run.Manifest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, id)
	}
	return m, nil
}

// List returns manifests newest first
func (r *runRepository) List(ctx context.Context, limit int) ([]*run.Manifest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.order) {
		limit = len(r.order)
	}
	manifests := make([]*run.Manifest, 0, limit)
	for i := len(r.order) - 1; i >= 0 && len(manifests) < limit; i-- {
		manifests = append(manifests, r.byID[r.order[i]])
	}
	return manifests, nil
}
