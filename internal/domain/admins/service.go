package admins

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sndot/internal/domain/people"
)

var (
	ErrNotFound = errors.New("administrator not found")

	// ErrDuplicateCPF vem dos repositórios quando o índice único barra a
	// escrita.
	ErrDuplicateCPF = errors.New("cpf already registered")

	// ErrDuplicateUsername vem dos repositórios quando o nome de usuário
	// já pertence a outro administrador.
	ErrDuplicateUsername = errors.New("username already registered")

	// ErrInvalidCredentials cobre usuário inexistente, senha errada e conta
	// sem privilégio, sem distinguir qual checagem falhou.
	ErrInvalidCredentials = errors.New("invalid credentials or missing permission")
)

// MsgInvalidCredentials é a mensagem única para qualquer falha de login.
const MsgInvalidCredentials = "Credenciais inválidas ou sem permissão."

// MsgUsernameTaken acompanha ErrDuplicateUsername como erro de campo.
const MsgUsernameTaken = "Um usuário com este nome de usuário já existe."

// Input é o formulário de administrador: a forma comum de pessoa mais as
// credenciais. ConfirmarSenha só participa da validação.
type Input struct {
	people.Input

	NomeUsuario    string `json:"nome_usuario"`
	Senha          string `json:"senha"`
	ConfirmarSenha string `json:"confirmar_senha"`
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

func (s *Service) Register(ctx context.Context, in Input) (Administrator, error) {
	p, errs := validate(in, true)
	if !errs.Empty() {
		return Administrator{}, errs
	}

	dupErrs, err := people.CheckCPF(ctx, s.dir, p.CPF, people.RoleAdministrador, "")
	if err != nil {
		return Administrator{}, err
	}
	if dupErrs != nil {
		return Administrator{}, dupErrs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Senha), bcrypt.DefaultCost)
	if err != nil {
		return Administrator{}, err
	}

	now := s.now()
	a := Administrator{
		ID:          uuid.NewString(),
		Person:      p,
		NomeUsuario: strings.TrimSpace(in.NomeUsuario),
		SenhaHash:   string(hash),
		Staff:       true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Administrator{}, s.translateDuplicate(err)
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id string) (Administrator, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Administrator, error) {
	return s.repo.List(ctx)
}

// Update substitui os campos editáveis. Senha em branco mantém o hash
// atual; senha preenchida exige confirmação e gera hash novo.
func (s *Service) Update(ctx context.Context, id string, in Input) (Administrator, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Administrator{}, err
	}

	trocaSenha := strings.TrimSpace(in.Senha) != "" || strings.TrimSpace(in.ConfirmarSenha) != ""
	p, errs := validate(in, trocaSenha)
	if !errs.Empty() {
		return Administrator{}, errs
	}

	dupErrs, err := people.CheckCPF(ctx, s.dir, p.CPF, people.RoleAdministrador, current.ID)
	if err != nil {
		return Administrator{}, err
	}
	if dupErrs != nil {
		return Administrator{}, dupErrs
	}

	hash := current.SenhaHash
	if trocaSenha {
		b, err := bcrypt.GenerateFromPassword([]byte(in.Senha), bcrypt.DefaultCost)
		if err != nil {
			return Administrator{}, err
		}
		hash = string(b)
	}

	updated := Administrator{
		ID:          current.ID,
		Person:      p,
		NomeUsuario: strings.TrimSpace(in.NomeUsuario),
		SenhaHash:   hash,
		Staff:       current.Staff,
		CreatedAt:   current.CreatedAt,
		UpdatedAt:   s.now(),
	}
	if err := s.repo.Update(ctx, updated); err != nil {
		return Administrator{}, s.translateDuplicate(err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Login autentica e exige a flag de staff. Qualquer falha devolve
// ErrInvalidCredentials, sem dizer qual checagem barrou (evita enumeração
// de usuários).
func (s *Service) Login(ctx context.Context, nomeUsuario, senha string) (Administrator, error) {
	a, err := s.repo.GetByUsername(ctx, strings.TrimSpace(nomeUsuario))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Administrator{}, ErrInvalidCredentials
		}
		return Administrator{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(a.SenhaHash), []byte(senha)) != nil {
		return Administrator{}, ErrInvalidCredentials
	}
	if !a.Staff {
		return Administrator{}, ErrInvalidCredentials
	}
	return a, nil
}

func validate(in Input, exigeSenha bool) (people.Person, people.FieldErrors) {
	p, errs := people.Validate(in.Input)
	if errs == nil {
		errs = people.FieldErrors{}
	}

	if strings.TrimSpace(in.NomeUsuario) == "" {
		errs.Add("nome_usuario", "Este campo é obrigatório.")
	}

	if exigeSenha {
		switch {
		case in.Senha == "":
			errs.Add("senha", "Este campo é obrigatório.")
		case in.Senha != in.ConfirmarSenha:
			errs.Add("confirmar_senha", "As senhas não coincidem.")
		}
	}

	if !errs.Empty() {
		return people.Person{}, errs
	}
	return p, errs
}

func (s *Service) translateDuplicate(err error) error {
	if errors.Is(err, ErrDuplicateCPF) {
		errs := people.FieldErrors{}
		errs.Add("cpf", people.MsgCPFTaken(people.RoleAdministrador))
		return errs
	}
	if errors.Is(err, ErrDuplicateUsername) {
		errs := people.FieldErrors{}
		errs.Add("nome_usuario", MsgUsernameTaken)
		return errs
	}
	return err
}
