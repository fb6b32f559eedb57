package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"sndot/internal/domain/donors"
	"sndot/internal/domain/people"
)

func donor(id, cpf string) donors.Donor {
	return donors.Donor{ID: id, Person: people.Person{CPF: cpf, Nome: "N-" + id}}
}

func TestDonorsRepo_CPFUnico(t *testing.T) {
	r := NewDonorsRepo()
	ctx := context.Background()

	if err := r.Create(ctx, donor("d-1", "11111111111")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := r.Create(ctx, donor("d-2", "11111111111")); !errors.Is(err, donors.ErrDuplicateCPF) {
		t.Fatalf("esperava ErrDuplicateCPF, veio %v", err)
	}

	// update para cpf de outro registro também barra
	if err := r.Create(ctx, donor("d-3", "22222222222")); err != nil {
		t.Fatalf("create: %v", err)
	}
	d3 := donor("d-3", "11111111111")
	if err := r.Update(ctx, d3); !errors.Is(err, donors.ErrDuplicateCPF) {
		t.Fatalf("update: esperava ErrDuplicateCPF, veio %v", err)
	}

	// manter o próprio cpf passa
	d1 := donor("d-1", "11111111111")
	d1.Nome = "Editado"
	if err := r.Update(ctx, d1); err != nil {
		t.Fatalf("update com o próprio cpf: %v", err)
	}
}

func TestDonorsRepo_DeleteLiberaCPF(t *testing.T) {
	r := NewDonorsRepo()
	ctx := context.Background()

	if err := r.Create(ctx, donor("d-1", "11111111111")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := r.Delete(ctx, "d-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := r.Create(ctx, donor("d-2", "11111111111")); err != nil {
		t.Fatalf("cpf deveria estar livre após a exclusão: %v", err)
	}
}

func TestDonorsRepo_CreateBatch_TudoOuNada(t *testing.T) {
	r := NewDonorsRepo()
	ctx := context.Background()

	if err := r.Create(ctx, donor("d-0", "00000000000")); err != nil {
		t.Fatalf("create: %v", err)
	}

	// conflito com registro existente
	err := r.CreateBatch(ctx, []donors.Donor{
		donor("d-1", "11111111111"),
		donor("d-2", "00000000000"),
	})
	if !errors.Is(err, donors.ErrDuplicateCPF) {
		t.Fatalf("esperava ErrDuplicateCPF, veio %v", err)
	}
	if _, err := r.GetByID(ctx, "d-1"); !errors.Is(err, donors.ErrNotFound) {
		t.Fatal("lote com conflito não pode persistir nenhum registro")
	}

	// conflito dentro do próprio lote
	err = r.CreateBatch(ctx, []donors.Donor{
		donor("d-3", "33333333333"),
		donor("d-4", "33333333333"),
	})
	if !errors.Is(err, donors.ErrDuplicateCPF) {
		t.Fatalf("esperava ErrDuplicateCPF no lote, veio %v", err)
	}
}

func TestDonorsRepo_List_OrdemEFiltroEPaginacao(t *testing.T) {
	r := NewDonorsRepo()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		cpf := fmt.Sprintf("123%08d", i)
		if err := r.Create(ctx, donor(fmt.Sprintf("d-%02d", i), cpf)); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	// página 2: itens 10..19 na ordem de inserção
	res, err := r.List(ctx, donors.ListQuery{Page: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 25 || res.TotalPages != 3 || res.Page != 2 {
		t.Fatalf("paginação errada: %+v", res)
	}
	if len(res.Items) != 10 || res.Items[0].ID != "d-10" || res.Items[9].ID != "d-19" {
		t.Fatalf("ordem errada na página 2: %v", res.Items)
	}

	// página além do fim vem a última
	res, err = r.List(ctx, donors.ListQuery{Page: 99})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Page != 3 || len(res.Items) != 5 {
		t.Fatalf("página além do fim: %+v", res)
	}

	// filtro por trecho de cpf
	res, err = r.List(ctx, donors.ListQuery{CPF: "00000024"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 1 || res.Items[0].ID != "d-24" {
		t.Fatalf("filtro errado: %+v", res)
	}
}

func TestDirectory_OrdemDeConsulta(t *testing.T) {
	dRepo := NewDonorsRepo()
	rRepo := NewRecipientsRepo()
	aRepo := NewAdminsRepo()
	dir := NewDirectory(dRepo, rRepo, aRepo)
	ctx := context.Background()

	occ, err := dir.Lookup(ctx, "11111111111")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if occ.Found {
		t.Fatal("cpf livre não deveria ter dono")
	}

	if err := dRepo.Create(ctx, donor("d-1", "11111111111")); err != nil {
		t.Fatalf("create: %v", err)
	}
	occ, err = dir.Lookup(ctx, "11111111111")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !occ.Found || occ.Role != people.RoleDoador || occ.ID != "d-1" {
		t.Fatalf("ocupação errada: %+v", occ)
	}
}
