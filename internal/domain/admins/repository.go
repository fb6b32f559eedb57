package admins

import "context"

type Repository interface {
	Create(ctx context.Context, a Administrator) error
	GetByID(ctx context.Context, id string) (Administrator, error)
	GetByUsername(ctx context.Context, nomeUsuario string) (Administrator, error)
	Update(ctx context.Context, a Administrator) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Administrator, error)
}
