package organs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("organ not found")

	// ErrNomeObrigatorio: "O nome do órgão é obrigatório."
	ErrNomeObrigatorio = errors.New("organ name required")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type Input struct {
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
}

func (s *Service) Create(ctx context.Context, in Input) (Organ, error) {
	nome := strings.TrimSpace(in.Nome)
	if nome == "" {
		return Organ{}, ErrNomeObrigatorio
	}

	now := s.now()
	o := Organ{
		ID:        uuid.NewString(),
		Nome:      nome,
		Descricao: strings.TrimSpace(in.Descricao),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return Organ{}, err
	}
	return o, nil
}

func (s *Service) Get(ctx context.Context, id string) (Organ, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Organ, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Organ, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Organ{}, err
	}

	nome := strings.TrimSpace(in.Nome)
	if nome == "" {
		return Organ{}, ErrNomeObrigatorio
	}

	updated := Organ{
		ID:        current.ID,
		Nome:      nome,
		Descricao: strings.TrimSpace(in.Descricao),
		CreatedAt: current.CreatedAt,
		UpdatedAt: s.now(),
	}
	if err := s.repo.Update(ctx, updated); err != nil {
		return Organ{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
