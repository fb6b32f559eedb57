package admins

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"sndot/internal/domain/people"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID       map[string]Administrator
	byUsername map[string]string
}

func newTestRepo() *testRepo {
	return &testRepo{
		byID:       map[string]Administrator{},
		byUsername: map[string]string{},
	}
}

func (r *testRepo) Create(ctx context.Context, a Administrator) error {
	for _, existing := range r.byID {
		if existing.CPF == a.CPF {
			return ErrDuplicateCPF
		}
	}
	if _, taken := r.byUsername[a.NomeUsuario]; taken {
		return ErrDuplicateUsername
	}
	r.byID[a.ID] = a
	r.byUsername[a.NomeUsuario] = a.ID
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Administrator, error) {
	a, ok := r.byID[id]
	if !ok {
		return Administrator{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) GetByUsername(ctx context.Context, nomeUsuario string) (Administrator, error) {
	id, ok := r.byUsername[nomeUsuario]
	if !ok {
		return Administrator{}, ErrNotFound
	}
	return r.byID[id], nil
}

func (r *testRepo) Update(ctx context.Context, a Administrator) error {
	current, ok := r.byID[a.ID]
	if !ok {
		return ErrNotFound
	}
	if current.NomeUsuario != a.NomeUsuario {
		delete(r.byUsername, current.NomeUsuario)
		r.byUsername[a.NomeUsuario] = a.ID
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	a, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byUsername, a.NomeUsuario)
	delete(r.byID, id)
	return nil
}

func (r *testRepo) List(ctx context.Context) ([]Administrator, error) {
	out := make([]Administrator, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
}

type emptyDirectory struct{}

func (emptyDirectory) Lookup(ctx context.Context, cpf string) (people.Occupancy, error) {
	return people.Occupancy{}, nil
}

func validInput() Input {
	return Input{
		Input: people.Input{
			CPF:            "123.456.789-01",
			Nome:           "Maria Souza",
			TipoSanguineo:  "A+",
			DataNascimento: "1985/10/02",
			Sexo:           "F",
			Profissao:      "Médico",
			EstadoCivil:    "Casada",
		},
		NomeUsuario:    "maria",
		Senha:          "segredo123",
		ConfirmarSenha: "segredo123",
	}
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo, emptyDirectory{})
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	return svc
}

func TestRegister_HashEStaff(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	a, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !a.Staff {
		t.Fatal("conta nova deveria nascer staff")
	}
	if a.SenhaHash == "segredo123" || a.SenhaHash == "" {
		t.Fatal("senha não pode ser gravada em claro")
	}
	if bcrypt.CompareHashAndPassword([]byte(a.SenhaHash), []byte("segredo123")) != nil {
		t.Fatal("hash não corresponde à senha")
	}
}

func TestRegister_SenhasNaoCoincidem(t *testing.T) {
	svc := newTestService(newTestRepo())

	in := validInput()
	in.ConfirmarSenha = "outra"
	_, err := svc.Register(context.Background(), in)
	fe, ok := people.AsFieldErrors(err)
	if !ok {
		t.Fatalf("esperava FieldErrors, veio %v", err)
	}
	if got := fe["confirmar_senha"]; len(got) != 1 || got[0] != "As senhas não coincidem." {
		t.Fatalf("mensagem errada: %v", got)
	}
}

func TestRegister_SenhaObrigatoria(t *testing.T) {
	svc := newTestService(newTestRepo())

	in := validInput()
	in.Senha = ""
	in.ConfirmarSenha = ""
	_, err := svc.Register(context.Background(), in)
	fe, ok := people.AsFieldErrors(err)
	if !ok {
		t.Fatalf("esperava FieldErrors, veio %v", err)
	}
	if _, has := fe["senha"]; !has {
		t.Fatalf("faltou erro de senha: %v", fe)
	}
}

func TestRegister_NomeDeUsuarioDuplicado(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("primeiro register: %v", err)
	}

	// CPF diferente, mesmo nome_usuario: tem que virar erro de campo, não
	// erro interno.
	in := validInput()
	in.CPF = "987.654.321-00"
	_, err := svc.Register(context.Background(), in)
	fe, ok := people.AsFieldErrors(err)
	if !ok {
		t.Fatalf("esperava FieldErrors, veio %v", err)
	}
	if got := fe["nome_usuario"]; len(got) != 1 || got[0] != MsgUsernameTaken {
		t.Fatalf("mensagem errada: %v", fe)
	}
}

func TestLogin_OK(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	a, err := svc.Login(context.Background(), "maria", "segredo123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if a.NomeUsuario != "maria" {
		t.Fatalf("usuário errado: %q", a.NomeUsuario)
	}
}

// Senha errada, usuário inexistente e conta sem staff caem todos no mesmo
// erro, sem vazar qual checagem barrou.
func TestLogin_FalhasIndistinguiveis(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	a, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(context.Background(), "maria", "errada"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("senha errada: esperava ErrInvalidCredentials, veio %v", err)
	}
	if _, err := svc.Login(context.Background(), "ninguem", "segredo123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("usuário inexistente: esperava ErrInvalidCredentials, veio %v", err)
	}

	// derruba o privilégio e tenta de novo com a senha certa
	a.Staff = false
	if err := repo.Update(context.Background(), a); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := svc.Login(context.Background(), "maria", "segredo123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("sem staff: esperava ErrInvalidCredentials, veio %v", err)
	}
}

func TestUpdate_SenhaEmBrancoMantemHash(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	a, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	in := validInput()
	in.Nome = "Maria Atualizada"
	in.Senha = ""
	in.ConfirmarSenha = ""
	updated, err := svc.Update(context.Background(), a.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.SenhaHash != a.SenhaHash {
		t.Fatal("senha em branco deveria manter o hash")
	}
	if updated.Nome != "Maria Atualizada" {
		t.Fatalf("nome não atualizado: %q", updated.Nome)
	}
}

func TestUpdate_TrocaDeSenha(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	a, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	in := validInput()
	in.Senha = "novasenha"
	in.ConfirmarSenha = "novasenha"
	updated, err := svc.Update(context.Background(), a.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.SenhaHash == a.SenhaHash {
		t.Fatal("troca de senha deveria gerar hash novo")
	}
	if bcrypt.CompareHashAndPassword([]byte(updated.SenhaHash), []byte("novasenha")) != nil {
		t.Fatal("hash novo não corresponde à senha nova")
	}
}
