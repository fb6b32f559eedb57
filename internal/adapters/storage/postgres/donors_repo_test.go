package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"sndot/internal/domain/donors"
	"sndot/internal/domain/people"
)

var donorColumns = []string{
	"id", "cpf", "nome", "tipo_sanguineo", "data_nascimento", "sexo", "profissao",
	"estado_natal", "cidade_natal", "estado_residencia", "cidade_residencia",
	"estado_civil", "contato_emergencia", "created_at", "updated_at",
}

func donorRow(mockRows *sqlmock.Rows, id, cpf string) *sqlmock.Rows {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return mockRows.AddRow(
		id, cpf, "João", "O+", time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC),
		"M", "Engenheiro", "SP", "Campinas", "SP", "Campinas",
		"Solteiro", "", now, now,
	)
}

func sampleDonor(id, cpf string) donors.Donor {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return donors.Donor{
		ID: id,
		Person: people.Person{
			CPF:            cpf,
			Nome:           "João",
			TipoSanguineo:  "O+",
			DataNascimento: time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC),
			Sexo:           people.SexoMasculino,
			Profissao:      "Engenheiro",
			EstadoCivil:    "Solteiro",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestDonorsRepo_Create_UniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO doadores").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "doadores_cpf_key"})

	repo := NewDonorsRepo(db)
	err = repo.Create(context.Background(), sampleDonor("d-1", "12345678901"))
	if !errors.Is(err, donors.ErrDuplicateCPF) {
		t.Fatalf("esperava ErrDuplicateCPF, veio %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectativas: %v", err)
	}
}

func TestDonorsRepo_List_FiltroEPaginacao(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM doadores WHERE cpf ILIKE`).
		WithArgs("%123%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	rows := sqlmock.NewRows(donorColumns)
	donorRow(rows, "d-21", "12321000000")
	donorRow(rows, "d-22", "00012345600")
	mock.ExpectQuery(`SELECT(.|\n)*FROM doadores(.|\n)*ORDER BY created_at ASC`).
		WithArgs("%123%", 10, 20).
		WillReturnRows(rows)

	repo := NewDonorsRepo(db)
	res, err := repo.List(context.Background(), donors.ListQuery{CPF: "123", Page: 3})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if res.Page != 3 || res.TotalPages != 3 || res.Total != 25 {
		t.Fatalf("paginação errada: %+v", res)
	}
	if len(res.Items) != 2 {
		t.Fatalf("esperava 2 itens, veio %d", len(res.Items))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectativas: %v", err)
	}
}

func TestDonorsRepo_List_PaginaAlemDoFimVemAUltima(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM doadores WHERE cpf ILIKE`).
		WithArgs("%%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	rows := sqlmock.NewRows(donorColumns)
	donorRow(rows, "d-1", "11111111111")
	mock.ExpectQuery(`SELECT(.|\n)*FROM doadores`).
		WithArgs("%%", 10, 0).
		WillReturnRows(rows)

	repo := NewDonorsRepo(db)
	res, err := repo.List(context.Background(), donors.ListQuery{Page: 99})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Page != 1 {
		t.Fatalf("página além do fim deveria virar 1, veio %d", res.Page)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectativas: %v", err)
	}
}

func TestDonorsRepo_Update_NaoEncontrado(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE doadores").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewDonorsRepo(db)
	err = repo.Update(context.Background(), sampleDonor("nao-existe", "12345678901"))
	if !errors.Is(err, donors.ErrNotFound) {
		t.Fatalf("esperava ErrNotFound, veio %v", err)
	}
}

func TestDonorsRepo_GetByID_NaoEncontrado(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT(.|\n)*FROM doadores(.|\n)*WHERE id =`).
		WithArgs("x").
		WillReturnRows(sqlmock.NewRows(donorColumns))

	repo := NewDonorsRepo(db)
	_, err = repo.GetByID(context.Background(), "x")
	if !errors.Is(err, donors.ErrNotFound) {
		t.Fatalf("esperava ErrNotFound, veio %v", err)
	}
}

func TestDonorsRepo_CreateBatch_RollbackNoConflito(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO doadores").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO doadores").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "doadores_cpf_key"})
	mock.ExpectRollback()

	repo := NewDonorsRepo(db)
	err = repo.CreateBatch(context.Background(), []donors.Donor{
		sampleDonor("d-1", "11111111111"),
		sampleDonor("d-2", "11111111111"),
	})
	if !errors.Is(err, donors.ErrDuplicateCPF) {
		t.Fatalf("esperava ErrDuplicateCPF, veio %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectativas: %v", err)
	}
}
