package donors

import "context"

// ListQuery filtra por trecho de CPF (contains, sem case) e pagina.
type ListQuery struct {
	CPF  string
	Page int
}

// PageResult é uma página de doadores mais os números da paginação.
type PageResult struct {
	Items      []Donor
	Page       int
	TotalPages int
	Total      int
}

type Repository interface {
	Create(ctx context.Context, d Donor) error
	// CreateBatch persiste tudo ou nada; usada pela importação em massa.
	CreateBatch(ctx context.Context, ds []Donor) error
	GetByID(ctx context.Context, id string) (Donor, error)
	Update(ctx context.Context, d Donor) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q ListQuery) (PageResult, error)
}
