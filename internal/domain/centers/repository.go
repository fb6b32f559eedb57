package centers

import "context"

type Repository interface {
	Create(ctx context.Context, c Center) error
	GetByID(ctx context.Context, id string) (Center, error)
	Update(ctx context.Context, c Center) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Center, error)
}
