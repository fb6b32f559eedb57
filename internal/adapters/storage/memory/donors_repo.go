package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"sndot/internal/domain/donors"
	"sndot/internal/domain/paging"
)

type DonorsRepo struct {
	mu    sync.RWMutex
	byID  map[string]donors.Donor
	order []string // ordem de inserção, para a listagem paginada
	byCPF map[string]string
}

// NewDonorsRepo devolve o repositório in-memory de doadores. O índice de
// CPF reproduz o índice único do Postgres, inclusive o erro.
func NewDonorsRepo() *DonorsRepo {
	return &DonorsRepo{
		byID:  make(map[string]donors.Donor),
		byCPF: make(map[string]string),
	}
}

func (r *DonorsRepo) Create(ctx context.Context, d donors.Donor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.ID) == "" {
		return errors.New("donor id required")
	}
	if _, exists := r.byID[d.ID]; exists {
		return errors.New("donor already exists")
	}
	if _, taken := r.byCPF[d.CPF]; taken {
		return donors.ErrDuplicateCPF
	}

	r.byID[d.ID] = d
	r.order = append(r.order, d.ID)
	r.byCPF[d.CPF] = d.ID
	return nil
}

func (r *DonorsRepo) CreateBatch(ctx context.Context, ds []donors.Donor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// tudo ou nada: valida o lote inteiro antes de inserir
	seen := make(map[string]struct{}, len(ds))
	for _, d := range ds {
		if _, taken := r.byCPF[d.CPF]; taken {
			return donors.ErrDuplicateCPF
		}
		if _, dup := seen[d.CPF]; dup {
			return donors.ErrDuplicateCPF
		}
		seen[d.CPF] = struct{}{}
	}

	for _, d := range ds {
		r.byID[d.ID] = d
		r.order = append(r.order, d.ID)
		r.byCPF[d.CPF] = d.ID
	}
	return nil
}

func (r *DonorsRepo) GetByID(ctx context.Context, id string) (donors.Donor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return donors.Donor{}, donors.ErrNotFound
	}
	return d, nil
}

func (r *DonorsRepo) Update(ctx context.Context, d donors.Donor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[d.ID]
	if !ok {
		return donors.ErrNotFound
	}
	if owner, taken := r.byCPF[d.CPF]; taken && owner != d.ID {
		return donors.ErrDuplicateCPF
	}

	if current.CPF != d.CPF {
		delete(r.byCPF, current.CPF)
		r.byCPF[d.CPF] = d.ID
	}
	r.byID[d.ID] = d
	return nil
}

func (r *DonorsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok {
		return donors.ErrNotFound
	}

	delete(r.byID, id)
	delete(r.byCPF, d.CPF)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *DonorsRepo) List(ctx context.Context, q donors.ListQuery) (donors.PageResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filter := strings.ToLower(q.CPF)
	matched := make([]donors.Donor, 0, len(r.order))
	for _, id := range r.order {
		d := r.byID[id]
		if filter != "" && !strings.Contains(strings.ToLower(d.CPF), filter) {
			continue
		}
		matched = append(matched, d)
	}

	total := len(matched)
	page := paging.Clamp(q.Page, total)
	offset, limit := paging.Window(page)

	end := offset + limit
	if offset > total {
		offset = total
	}
	if end > total {
		end = total
	}

	return donors.PageResult{
		Items:      matched[offset:end],
		Page:       page,
		TotalPages: paging.TotalPages(total),
		Total:      total,
	}, nil
}

// CPFOwner diz se algum doador usa o CPF; alimenta o diretório de CPFs.
func (r *DonorsRepo) CPFOwner(cpf string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byCPF[cpf]
	return id, ok
}
