package recipients

import "context"

type ListQuery struct {
	CPF  string
	Page int
}

type PageResult struct {
	Items      []Recipient
	Page       int
	TotalPages int
	Total      int
}

type Repository interface {
	Create(ctx context.Context, rec Recipient) error
	// CreateBatch persiste tudo ou nada; usada pela importação em massa.
	CreateBatch(ctx context.Context, recs []Recipient) error
	GetByID(ctx context.Context, id string) (Recipient, error)
	Update(ctx context.Context, rec Recipient) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q ListQuery) (PageResult, error)
}
