package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"sndot/internal/domain/admins"
)

type AdminsRepo struct {
	mu         sync.RWMutex
	byID       map[string]admins.Administrator
	order      []string
	byCPF      map[string]string
	byUsername map[string]string
}

func NewAdminsRepo() *AdminsRepo {
	return &AdminsRepo{
		byID:       make(map[string]admins.Administrator),
		byCPF:      make(map[string]string),
		byUsername: make(map[string]string),
	}
}

func (r *AdminsRepo) Create(ctx context.Context, a admins.Administrator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("administrator id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("administrator already exists")
	}
	if _, taken := r.byCPF[a.CPF]; taken {
		return admins.ErrDuplicateCPF
	}
	if _, taken := r.byUsername[a.NomeUsuario]; taken {
		return admins.ErrDuplicateUsername
	}

	r.byID[a.ID] = a
	r.order = append(r.order, a.ID)
	r.byCPF[a.CPF] = a.ID
	r.byUsername[a.NomeUsuario] = a.ID
	return nil
}

func (r *AdminsRepo) GetByID(ctx context.Context, id string) (admins.Administrator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return admins.Administrator{}, admins.ErrNotFound
	}
	return a, nil
}

func (r *AdminsRepo) GetByUsername(ctx context.Context, nomeUsuario string) (admins.Administrator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[nomeUsuario]
	if !ok {
		return admins.Administrator{}, admins.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *AdminsRepo) Update(ctx context.Context, a admins.Administrator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[a.ID]
	if !ok {
		return admins.ErrNotFound
	}
	if owner, taken := r.byCPF[a.CPF]; taken && owner != a.ID {
		return admins.ErrDuplicateCPF
	}
	if owner, taken := r.byUsername[a.NomeUsuario]; taken && owner != a.ID {
		return admins.ErrDuplicateUsername
	}

	if current.CPF != a.CPF {
		delete(r.byCPF, current.CPF)
		r.byCPF[a.CPF] = a.ID
	}
	if current.NomeUsuario != a.NomeUsuario {
		delete(r.byUsername, current.NomeUsuario)
		r.byUsername[a.NomeUsuario] = a.ID
	}
	r.byID[a.ID] = a
	return nil
}

func (r *AdminsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return admins.ErrNotFound
	}

	delete(r.byID, id)
	delete(r.byCPF, a.CPF)
	delete(r.byUsername, a.NomeUsuario)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *AdminsRepo) List(ctx context.Context) ([]admins.Administrator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]admins.Administrator, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *AdminsRepo) CPFOwner(cpf string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byCPF[cpf]
	return id, ok
}
