package organs

import "context"

type Repository interface {
	Create(ctx context.Context, o Organ) error
	GetByID(ctx context.Context, id string) (Organ, error)
	Update(ctx context.Context, o Organ) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Organ, error)
}
