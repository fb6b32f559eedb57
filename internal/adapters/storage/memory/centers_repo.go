package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"sndot/internal/domain/centers"
)

type CentersRepo struct {
	mu    sync.RWMutex
	byID  map[string]centers.Center
	order []string
}

func NewCentersRepo() *CentersRepo {
	return &CentersRepo{byID: make(map[string]centers.Center)}
}

func (r *CentersRepo) Create(ctx context.Context, c centers.Center) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("center id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("center already exists")
	}
	r.byID[c.ID] = c
	r.order = append(r.order, c.ID)
	return nil
}

func (r *CentersRepo) GetByID(ctx context.Context, id string) (centers.Center, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return centers.Center{}, centers.ErrNotFound
	}
	return c, nil
}

func (r *CentersRepo) Update(ctx context.Context, c centers.Center) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.ID]; !ok {
		return centers.ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *CentersRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return centers.ErrNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *CentersRepo) List(ctx context.Context) ([]centers.Center, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]centers.Center, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}
