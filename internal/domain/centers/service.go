package centers

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"sndot/internal/domain/people"
)

var ErrNotFound = errors.New("center not found")

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
	Nome   string `json:"nome"`
	Estado string `json:"estado"`
	Cidade string `json:"cidade"`
}

func (s *Service) Create(ctx context.Context, in Input) (Center, error) {
	c, errs := validate(in)
	if !errs.Empty() {
		return Center{}, errs
	}

	now := s.now()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.repo.Create(ctx, c); err != nil {
		return Center{}, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (Center, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Center, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Center, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Center{}, err
	}

	c, errs := validate(in)
	if !errs.Empty() {
		return Center{}, errs
	}

	c.ID = current.ID
	c.CreatedAt = current.CreatedAt
	c.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, c); err != nil {
		return Center{}, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// validate reusa as mesmas regras de estado/cidade do cadastro de pessoas:
// UF conhecida e cidade obrigatória quando o estado vem preenchido.
func validate(in Input) (Center, people.FieldErrors) {
	errs := people.FieldErrors{}

	nome := strings.TrimSpace(in.Nome)
	if nome == "" {
		errs.Add("nome", "Este campo é obrigatório.")
	}

	estado := strings.TrimSpace(in.Estado)
	if estado != "" && !slices.Contains(people.UFs, estado) {
		errs.Add("estado", "Escolha uma opção válida.")
	}

	cidade := strings.TrimSpace(in.Cidade)
	if estado != "" && cidade == "" {
		errs.Add("cidade", "Cidade é obrigatória quando o estado é selecionado.")
	}

	if !errs.Empty() {
		return Center{}, errs
	}
	return Center{Nome: nome, Estado: estado, Cidade: cidade}, errs
}
