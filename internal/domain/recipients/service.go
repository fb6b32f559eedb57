package recipients

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"sndot/internal/domain/people"
)

var (
	ErrNotFound = errors.New("recipient not found")

	// ErrDuplicateCPF vem dos repositórios quando o índice único de CPF
	// barra a escrita.
	ErrDuplicateCPF = errors.New("cpf already registered")
)

// Input é o formulário de receptor: a forma comum de pessoa mais os campos
// da fila de transplante.
type Input struct {
	people.Input

	OrgaoNecessario    string `json:"orgao_necessario"`
	GravidadeCondicao  string `json:"gravidade_condicao"`
	CentroTransplante  string `json:"centro_transplante"`
	PosicaoListaEspera string `json:"posicao_lista_espera"`
}

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

func (s *Service) Register(ctx context.Context, in Input) (Recipient, error) {
	p, errs := validate(in)
	if !errs.Empty() {
		return Recipient{}, errs
	}

	dupErrs, err := people.CheckCPF(ctx, s.dir, p.CPF, people.RoleReceptor, "")
	if err != nil {
		return Recipient{}, err
	}
	if dupErrs != nil {
		return Recipient{}, dupErrs
	}

	now := s.now()
	rec := Recipient{
		ID:                 uuid.NewString(),
		Person:             p,
		OrgaoNecessario:    strings.TrimSpace(in.OrgaoNecessario),
		GravidadeCondicao:  strings.TrimSpace(in.GravidadeCondicao),
		CentroTransplante:  strings.TrimSpace(in.CentroTransplante),
		PosicaoListaEspera: strings.TrimSpace(in.PosicaoListaEspera),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return Recipient{}, s.translateDuplicate(err)
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id string) (Recipient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Recipient, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Recipient{}, err
	}

	p, errs := validate(in)
	if !errs.Empty() {
		return Recipient{}, errs
	}

	dupErrs, err := people.CheckCPF(ctx, s.dir, p.CPF, people.RoleReceptor, current.ID)
	if err != nil {
		return Recipient{}, err
	}
	if dupErrs != nil {
		return Recipient{}, dupErrs
	}

	updated := Recipient{
		ID:                 current.ID,
		Person:             p,
		OrgaoNecessario:    strings.TrimSpace(in.OrgaoNecessario),
		GravidadeCondicao:  strings.TrimSpace(in.GravidadeCondicao),
		CentroTransplante:  strings.TrimSpace(in.CentroTransplante),
		PosicaoListaEspera: strings.TrimSpace(in.PosicaoListaEspera),
		CreatedAt:          current.CreatedAt,
		UpdatedAt:          s.now(),
	}
	if err := s.repo.Update(ctx, updated); err != nil {
		return Recipient{}, s.translateDuplicate(err)
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

// ImportBatch persiste registros do arquivo de importação, tudo ou nada,
// sem passar pela validação de formulário (a carga confia no arquivo).
func (s *Service) ImportBatch(ctx context.Context, recs []Recipient) error {
	now := s.now()
	for i := range recs {
		recs[i].ID = uuid.NewString()
		recs[i].CreatedAt = now
		recs[i].UpdatedAt = now
	}
	if err := s.repo.CreateBatch(ctx, recs); err != nil {
		return s.translateDuplicate(err)
	}
	return nil
}

// validate aplica as regras comuns e exige os campos próprios do receptor.
func validate(in Input) (people.Person, people.FieldErrors) {
	p, errs := people.Validate(in.Input)
	if errs == nil {
		errs = people.FieldErrors{}
	}

	if strings.TrimSpace(in.OrgaoNecessario) == "" {
		errs.Add("orgao_necessario", "Este campo é obrigatório.")
	}
	if strings.TrimSpace(in.GravidadeCondicao) == "" {
		errs.Add("gravidade_condicao", "Este campo é obrigatório.")
	}
	if strings.TrimSpace(in.CentroTransplante) == "" {
		errs.Add("centro_transplante", "Este campo é obrigatório.")
	}
	if strings.TrimSpace(in.PosicaoListaEspera) == "" {
		errs.Add("posicao_lista_espera", "Este campo é obrigatório.")
	}

	if !errs.Empty() {
		return people.Person{}, errs
	}
	return p, errs
}

func (s *Service) translateDuplicate(err error) error {
	if errors.Is(err, ErrDuplicateCPF) {
		errs := people.FieldErrors{}
		errs.Add("cpf", people.MsgCPFTaken(people.RoleReceptor))
		return errs
	}
	return err
}
