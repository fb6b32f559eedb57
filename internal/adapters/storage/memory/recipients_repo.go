package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"sndot/internal/domain/paging"
	"sndot/internal/domain/recipients"
)

type RecipientsRepo struct {
	mu    sync.RWMutex
	byID  map[string]recipients.Recipient
	order []string
	byCPF map[string]string
}

func NewRecipientsRepo() *RecipientsRepo {
	return &RecipientsRepo{
		byID:  make(map[string]recipients.Recipient),
		byCPF: make(map[string]string),
	}
}

func (r *RecipientsRepo) Create(ctx context.Context, rec recipients.Recipient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("recipient id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("recipient already exists")
	}
	if _, taken := r.byCPF[rec.CPF]; taken {
		return recipients.ErrDuplicateCPF
	}

	r.byID[rec.ID] = rec
	r.order = append(r.order, rec.ID)
	r.byCPF[rec.CPF] = rec.ID
	return nil
}

func (r *RecipientsRepo) CreateBatch(ctx context.Context, recs []recipients.Recipient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(recs))
	for _, rec := range recs {
		if _, taken := r.byCPF[rec.CPF]; taken {
			return recipients.ErrDuplicateCPF
		}
		if _, dup := seen[rec.CPF]; dup {
			return recipients.ErrDuplicateCPF
		}
		seen[rec.CPF] = struct{}{}
	}

	for _, rec := range recs {
		r.byID[rec.ID] = rec
		r.order = append(r.order, rec.ID)
		r.byCPF[rec.CPF] = rec.ID
	}
	return nil
}

func (r *RecipientsRepo) GetByID(ctx context.Context, id string) (recipients.Recipient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return recipients.Recipient{}, recipients.ErrNotFound
	}
	return rec, nil
}

func (r *RecipientsRepo) Update(ctx context.Context, rec recipients.Recipient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[rec.ID]
	if !ok {
		return recipients.ErrNotFound
	}
	if owner, taken := r.byCPF[rec.CPF]; taken && owner != rec.ID {
		return recipients.ErrDuplicateCPF
	}

	if current.CPF != rec.CPF {
		delete(r.byCPF, current.CPF)
		r.byCPF[rec.CPF] = rec.ID
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *RecipientsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return recipients.ErrNotFound
	}

	delete(r.byID, id)
	delete(r.byCPF, rec.CPF)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *RecipientsRepo) List(ctx context.Context, q recipients.ListQuery) (recipients.PageResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filter := strings.ToLower(q.CPF)
	matched := make([]recipients.Recipient, 0, len(r.order))
	for _, id := range r.order {
		rec := r.byID[id]
		if filter != "" && !strings.Contains(strings.ToLower(rec.CPF), filter) {
			continue
		}
		matched = append(matched, rec)
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

	return recipients.PageResult{
		Items:      matched[offset:end],
		Page:       page,
		TotalPages: paging.TotalPages(total),
		Total:      total,
	}, nil
}

func (r *RecipientsRepo) CPFOwner(cpf string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byCPF[cpf]
	return id, ok
}
