package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"sndot/internal/domain/organs"
)

type OrgansRepo struct {
	mu    sync.RWMutex
	byID  map[string]organs.Organ
	order []string
}

func NewOrgansRepo() *OrgansRepo {
	return &OrgansRepo{byID: make(map[string]organs.Organ)}
}

func (r *OrgansRepo) Create(ctx context.Context, o organs.Organ) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(o.ID) == "" {
		return errors.New("organ id required")
	}
	if _, exists := r.byID[o.ID]; exists {
		return errors.New("organ already exists")
	}
	r.byID[o.ID] = o
	r.order = append(r.order, o.ID)
	return nil
}

func (r *OrgansRepo) GetByID(ctx context.Context, id string) (organs.Organ, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return organs.Organ{}, organs.ErrNotFound
	}
	return o, nil
}

func (r *OrgansRepo) Update(ctx context.Context, o organs.Organ) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[o.ID]; !ok {
		return organs.ErrNotFound
	}
	r.byID[o.ID] = o
	return nil
}

func (r *OrgansRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return organs.ErrNotFound
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

func (r *OrgansRepo) List(ctx context.Context) ([]organs.Organ, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]organs.Organ, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}
