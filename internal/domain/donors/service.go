package donors

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"sndot/internal/domain/people"
)

var (
	ErrNotFound = errors.New("donor not found")

	// ErrDuplicateCPF é o que os repositórios devolvem quando o índice
	// único de CPF barra a escrita (fecha a corrida entre a pré-checagem
	// e o insert).
	ErrDuplicateCPF = errors.New("cpf already registered")
)

type Service struct {
	repo Repository
	dir  people.Directory
	now  func() time.Time
}

func NewService(repo Repository, dir people.Directory) *Service {
	return &Service{
		repo: repo,
		dir:  dir,
		now:  time.Now,
	}
}

// Register valida o formulário, checa o CPF contra os três cadastros e
// persiste. Erros de campo voltam como people.FieldErrors.
func (s *Service) Register(ctx context.Context, in people.Input) (Donor, error) {
	p, errs := people.Validate(in)
	if !errs.Empty() {
		return Donor{}, errs
	}

	dupErrs, err := people.CheckCPF(ctx, s.dir, p.CPF, people.RoleDoador, "")
	if err != nil {
		return Donor{}, err
	}
	if dupErrs != nil {
		return Donor{}, dupErrs
	}

	now := s.now()
	d := Donor{
		ID:        uuid.NewString(),
		Person:    p,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return Donor{}, s.translateDuplicate(err)
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, id string) (Donor, error) {
	return s.repo.GetByID(ctx, id)
}

// Update substitui todos os campos editáveis, com as mesmas regras do
// cadastro. O registro pode manter o próprio CPF.
func (s *Service) Update(ctx context.Context, id string, in people.Input) (Donor, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Donor{}, err
	}

	p, errs := people.Validate(in)
	if !errs.Empty() {
		return Donor{}, errs
	}

	dupErrs, err := people.CheckCPF(ctx, s.dir, p.CPF, people.RoleDoador, current.ID)
	if err != nil {
		return Donor{}, err
	}
	if dupErrs != nil {
		return Donor{}, dupErrs
	}

	updated := Donor{
		ID:        current.ID,
		Person:    p,
		CreatedAt: current.CreatedAt,
		UpdatedAt: s.now(),
	}
	if err := s.repo.Update(ctx, updated); err != nil {
		return Donor{}, s.translateDuplicate(err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, q ListQuery) (PageResult, error) {
	q.CPF = people.NormalizeCPF(q.CPF)
	return s.repo.List(ctx, q)
}

// ImportBatch persiste registros vindos do arquivo de importação, tudo ou
// nada. Propositalmente não passa pela validação de formulário: a carga em
// massa confia no arquivo de origem.
func (s *Service) ImportBatch(ctx context.Context, ds []Donor) error {
	now := s.now()
	for i := range ds {
		ds[i].ID = uuid.NewString()
		ds[i].CreatedAt = now
		ds[i].UpdatedAt = now
	}
	if err := s.repo.CreateBatch(ctx, ds); err != nil {
		return s.translateDuplicate(err)
	}
	return nil
}

func (s *Service) translateDuplicate(err error) error {
	if errors.Is(err, ErrDuplicateCPF) {
		errs := people.FieldErrors{}
		errs.Add("cpf", people.MsgCPFTaken(people.RoleDoador))
		return errs
	}
	return err
}
