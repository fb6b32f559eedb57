package donors

import (
	"context"
	"testing"
	"time"

	"sndot/internal/domain/people"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID  map[string]Donor
	order []string
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Donor{}}
}

func (r *testRepo) Create(ctx context.Context, d Donor) error {
	for _, existing := range r.byID {
		if existing.CPF == d.CPF {
			return ErrDuplicateCPF
		}
	}
	r.byID[d.ID] = d
	r.order = append(r.order, d.ID)
	return nil
}

func (r *testRepo) CreateBatch(ctx context.Context, ds []Donor) error {
	for _, d := range ds {
		if err := r.Create(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Donor, error) {
	d, ok := r.byID[id]
	if !ok {
		return Donor{}, ErrNotFound
	}
	return d, nil
}

func (r *testRepo) Update(ctx context.Context, d Donor) error {
	if _, ok := r.byID[d.ID]; !ok {
		return ErrNotFound
	}
	r.byID[d.ID] = d
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) List(ctx context.Context, q ListQuery) (PageResult, error) {
	items := make([]Donor, 0)
	for _, id := range r.order {
		d, ok := r.byID[id]
		if !ok {
			continue
		}
		items = append(items, d)
	}
	return PageResult{Items: items, Page: 1, TotalPages: 1, Total: len(items)}, nil
}

// fakeDirectory responde de um mapa cpf -> ocupação fixado pelo teste.
type fakeDirectory struct {
	byCPF map[string]people.Occupancy
}

func (f *fakeDirectory) Lookup(ctx context.Context, cpf string) (people.Occupancy, error) {
	return f.byCPF[cpf], nil
}

func validInput() people.Input {
	return people.Input{
		CPF:            "123.456.789-01",
		Nome:           "João da Silva",
		TipoSanguineo:  "O+",
		DataNascimento: "1990/05/20",
		Sexo:           "M",
		Profissao:      "Engenheiro",
		EstadoCivil:    "Solteiro",
	}
}

func newTestService(repo Repository, dir people.Directory) *Service {
	svc := NewService(repo, dir)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	return svc
}

func TestRegister_OK(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, &fakeDirectory{byCPF: map[string]people.Occupancy{}})

	d, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if d.ID == "" {
		t.Fatal("esperava ID gerado")
	}
	if d.CPF != "12345678901" {
		t.Fatalf("cpf não normalizado: %q", d.CPF)
	}
	if _, ok := repo.byID[d.ID]; !ok {
		t.Fatal("doador não persistido")
	}
}

func TestRegister_CPFOcupadoPorReceptor(t *testing.T) {
	dir := &fakeDirectory{byCPF: map[string]people.Occupancy{
		"12345678901": {Found: true, Role: people.RoleReceptor, ID: "r-1"},
	}}
	svc := newTestService(newTestRepo(), dir)

	_, err := svc.Register(context.Background(), validInput())
	fe, ok := people.AsFieldErrors(err)
	if !ok {
		t.Fatalf("esperava FieldErrors, veio %v", err)
	}
	want := "Este CPF já está cadastrado como receptor."
	if got := fe["cpf"]; len(got) != 1 || got[0] != want {
		t.Fatalf("mensagem errada: %v", got)
	}
}

func TestRegister_ValidacaoBarra(t *testing.T) {
	svc := newTestService(newTestRepo(), &fakeDirectory{byCPF: map[string]people.Occupancy{}})

	in := validInput()
	in.Nome = ""
	_, err := svc.Register(context.Background(), in)
	fe, ok := people.AsFieldErrors(err)
	if !ok {
		t.Fatalf("esperava FieldErrors, veio %v", err)
	}
	if _, has := fe["nome"]; !has {
		t.Fatalf("faltou erro de nome: %v", fe)
	}
}

func TestUpdate_MantemProprioCPF(t *testing.T) {
	repo := newTestRepo()
	dir := &fakeDirectory{byCPF: map[string]people.Occupancy{}}
	svc := newTestService(repo, dir)

	d, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// o diretório agora aponta o próprio registro como dono do CPF
	dir.byCPF[d.CPF] = people.Occupancy{Found: true, Role: people.RoleDoador, ID: d.ID}

	in := validInput()
	in.Nome = "João Atualizado"
	updated, err := svc.Update(context.Background(), d.ID, in)
	if err != nil {
		t.Fatalf("update com o próprio cpf: %v", err)
	}
	if updated.Nome != "João Atualizado" {
		t.Fatalf("nome não atualizado: %q", updated.Nome)
	}
	if !updated.CreatedAt.Equal(d.CreatedAt) {
		t.Fatal("created_at não deveria mudar na edição")
	}
}

func TestUpdate_CPFDeOutroDoador(t *testing.T) {
	dir := &fakeDirectory{byCPF: map[string]people.Occupancy{}}
	repo := newTestRepo()
	svc := newTestService(repo, dir)

	d, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// outro doador é dono do cpf alvo
	dir.byCPF["99988877766"] = people.Occupancy{Found: true, Role: people.RoleDoador, ID: "outro"}

	in := validInput()
	in.CPF = "999.888.777-66"
	_, err = svc.Update(context.Background(), d.ID, in)
	fe, ok := people.AsFieldErrors(err)
	if !ok {
		t.Fatalf("esperava FieldErrors, veio %v", err)
	}
	want := "Este CPF já está cadastrado como doador."
	if got := fe["cpf"]; len(got) != 1 || got[0] != want {
		t.Fatalf("mensagem errada: %v", got)
	}
}

func TestRegister_CorridaFechadaPeloRepo(t *testing.T) {
	// o diretório não vê o cpf, mas o repo (índice único) barra
	repo := newTestRepo()
	svc := newTestService(repo, &fakeDirectory{byCPF: map[string]people.Occupancy{}})

	if _, err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("primeiro register: %v", err)
	}
	_, err := svc.Register(context.Background(), validInput())
	fe, ok := people.AsFieldErrors(err)
	if !ok {
		t.Fatalf("esperava FieldErrors traduzido, veio %v", err)
	}
	if _, has := fe["cpf"]; !has {
		t.Fatalf("faltou erro de cpf: %v", fe)
	}
}

func TestImportBatch_AtribuiIDsETimestamps(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, &fakeDirectory{byCPF: map[string]people.Occupancy{}})

	ds := []Donor{
		{Person: people.Person{CPF: "11111111111", Nome: "A"}},
		{Person: people.Person{CPF: "22222222222", Nome: "B"}},
	}
	if err := svc.ImportBatch(context.Background(), ds); err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(repo.byID) != 2 {
		t.Fatalf("esperava 2 persistidos, tem %d", len(repo.byID))
	}
	for _, d := range repo.byID {
		if d.ID == "" || d.CreatedAt.IsZero() {
			t.Fatalf("registro sem id/timestamp: %+v", d)
		}
	}
}

func TestList_NormalizaFiltro(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, &fakeDirectory{byCPF: map[string]people.Occupancy{}})

	captured := ""
	wrapped := &captureRepo{Repository: repo, onList: func(q ListQuery) { captured = q.CPF }}
	svc.repo = wrapped

	if _, err := svc.List(context.Background(), ListQuery{CPF: "123.456"}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if captured != "123456" {
		t.Fatalf("filtro não normalizado: %q", captured)
	}
}

type captureRepo struct {
	Repository
	onList func(ListQuery)
}

func (c *captureRepo) List(ctx context.Context, q ListQuery) (PageResult, error) {
	c.onList(q)
	return c.Repository.List(ctx, q)
}
