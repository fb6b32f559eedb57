package postgres

import (
	"context"
	"database/sql"
	"strings"

	"sndot/internal/domain/admins"
)

type AdminsRepo struct {
	db *sql.DB
}

func NewAdminsRepo(db *sql.DB) *AdminsRepo {
	return &AdminsRepo{db: db}
}

const adminCols = `
	id, cpf, nome, tipo_sanguineo, data_nascimento, sexo, profissao,
	estado_natal, cidade_natal, estado_residencia, cidade_residencia,
	estado_civil, contato_emergencia,
	nome_usuario, senha_hash, is_staff,
	created_at, updated_at
`

func (r *AdminsRepo) Create(ctx context.Context, a admins.Administrator) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO administradores (`+adminCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	`,
		a.ID,
		a.CPF,
		a.Nome,
		a.TipoSanguineo,
		a.DataNascimento,
		a.Sexo,
		a.Profissao,
		a.EstadoNatal,
		a.CidadeNatal,
		a.EstadoResidencia,
		a.CidadeResidencia,
		a.EstadoCivil,
		a.ContatoEmergencia,
		a.NomeUsuario,
		a.SenhaHash,
		a.Staff,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return translateAdminUnique(err)
}

func (r *AdminsRepo) GetByID(ctx context.Context, id string) (admins.Administrator, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return admins.Administrator{}, admins.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+adminCols+`
		FROM administradores
		WHERE id = $1
	`, id)

	a, err := scanAdmin(row)
	if err == sql.ErrNoRows {
		return admins.Administrator{}, admins.ErrNotFound
	}
	return a, err
}

func (r *AdminsRepo) GetByUsername(ctx context.Context, nomeUsuario string) (admins.Administrator, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+adminCols+`
		FROM administradores
		WHERE nome_usuario = $1
	`, nomeUsuario)

	a, err := scanAdmin(row)
	if err == sql.ErrNoRows {
		return admins.Administrator{}, admins.ErrNotFound
	}
	return a, err
}

func (r *AdminsRepo) Update(ctx context.Context, a admins.Administrator) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE administradores
		SET
			cpf = $2,
			nome = $3,
			tipo_sanguineo = $4,
			data_nascimento = $5,
			sexo = $6,
			profissao = $7,
			estado_natal = $8,
			cidade_natal = $9,
			estado_residencia = $10,
			cidade_residencia = $11,
			estado_civil = $12,
			contato_emergencia = $13,
			nome_usuario = $14,
			senha_hash = $15,
			is_staff = $16,
			updated_at = $17
		WHERE id = $1
	`,
		a.ID,
		a.CPF,
		a.Nome,
		a.TipoSanguineo,
		a.DataNascimento,
		a.Sexo,
		a.Profissao,
		a.EstadoNatal,
		a.CidadeNatal,
		a.EstadoResidencia,
		a.CidadeResidencia,
		a.EstadoCivil,
		a.ContatoEmergencia,
		a.NomeUsuario,
		a.SenhaHash,
		a.Staff,
		a.UpdatedAt,
	)
	if err != nil {
		return translateAdminUnique(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return admins.ErrNotFound
	}
	return nil
}

// translateAdminUnique separa os dois índices únicos da tabela: o de
// nome_usuario tem constraint própria no schema; qualquer outro 23505
// aqui é o de CPF.
func translateAdminUnique(err error) error {
	if name, ok := uniqueConstraint(err); ok {
		if name == "administradores_nome_usuario_key" {
			return admins.ErrDuplicateUsername
		}
		return admins.ErrDuplicateCPF
	}
	return err
}

func (r *AdminsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM administradores WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return admins.ErrNotFound
	}
	return nil
}

func (r *AdminsRepo) List(ctx context.Context) ([]admins.Administrator, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+adminCols+`
		FROM administradores
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]admins.Administrator, 0)
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAdmin(row rowScanner) (admins.Administrator, error) {
	var a admins.Administrator
	err := row.Scan(
		&a.ID,
		&a.CPF,
		&a.Nome,
		&a.TipoSanguineo,
		&a.DataNascimento,
		&a.Sexo,
		&a.Profissao,
		&a.EstadoNatal,
		&a.CidadeNatal,
		&a.EstadoResidencia,
		&a.CidadeResidencia,
		&a.EstadoCivil,
		&a.ContatoEmergencia,
		&a.NomeUsuario,
		&a.SenhaHash,
		&a.Staff,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}
