package postgres

import (
	"context"
	"database/sql"
	"strings"

	"sndot/internal/domain/donors"
	"sndot/internal/domain/paging"
)

type DonorsRepo struct {
	db *sql.DB
}

func NewDonorsRepo(db *sql.DB) *DonorsRepo {
	return &DonorsRepo{db: db}
}

const donorCols = `
	id, cpf, nome, tipo_sanguineo, data_nascimento, sexo, profissao,
	estado_natal, cidade_natal, estado_residencia, cidade_residencia,
	estado_civil, contato_emergencia,
	created_at, updated_at
`

func (r *DonorsRepo) Create(ctx context.Context, d donors.Donor) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO doadores (`+donorCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		d.ID,
		d.CPF,
		d.Nome,
		d.TipoSanguineo,
		d.DataNascimento,
		d.Sexo,
		d.Profissao,
		d.EstadoNatal,
		d.CidadeNatal,
		d.EstadoResidencia,
		d.CidadeResidencia,
		d.EstadoCivil,
		d.ContatoEmergencia,
		d.CreatedAt,
		d.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return donors.ErrDuplicateCPF
	}
	return err
}

// CreateBatch insere tudo numa transação só: ou a importação inteira
// entra, ou nada entra.
func (r *DonorsRepo) CreateBatch(ctx context.Context, ds []donors.Donor) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, d := range ds {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO doadores (`+donorCols+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		`,
			d.ID,
			d.CPF,
			d.Nome,
			d.TipoSanguineo,
			d.DataNascimento,
			d.Sexo,
			d.Profissao,
			d.EstadoNatal,
			d.CidadeNatal,
			d.EstadoResidencia,
			d.CidadeResidencia,
			d.EstadoCivil,
			d.ContatoEmergencia,
			d.CreatedAt,
			d.UpdatedAt,
		)
		if isUniqueViolation(err) {
			return donors.ErrDuplicateCPF
		}
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *DonorsRepo) GetByID(ctx context.Context, id string) (donors.Donor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return donors.Donor{}, donors.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+donorCols+`
		FROM doadores
		WHERE id = $1
	`, id)

	d, err := scanDonor(row)
	if err == sql.ErrNoRows {
		return donors.Donor{}, donors.ErrNotFound
	}
	return d, err
}

func (r *DonorsRepo) Update(ctx context.Context, d donors.Donor) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE doadores
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
			updated_at = $14
		WHERE id = $1
	`,
		d.ID,
		d.CPF,
		d.Nome,
		d.TipoSanguineo,
		d.DataNascimento,
		d.Sexo,
		d.Profissao,
		d.EstadoNatal,
		d.CidadeNatal,
		d.EstadoResidencia,
		d.CidadeResidencia,
		d.EstadoCivil,
		d.ContatoEmergencia,
		d.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return donors.ErrDuplicateCPF
	}
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return donors.ErrNotFound
	}
	return nil
}

func (r *DonorsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM doadores WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return donors.ErrNotFound
	}
	return nil
}

// List pagina a listagem com as mesmas regras da camada de memória:
// página fora do intervalo cai na mais próxima, nunca erro.
func (r *DonorsRepo) List(ctx context.Context, q donors.ListQuery) (donors.PageResult, error) {
	filter := "%" + strings.TrimSpace(q.CPF) + "%"

	var total int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM doadores WHERE cpf ILIKE $1
	`, filter).Scan(&total)
	if err != nil {
		return donors.PageResult{}, err
	}

	page := paging.Clamp(q.Page, total)
	offset, limit := paging.Window(page)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+donorCols+`
		FROM doadores
		WHERE cpf ILIKE $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`, filter, limit, offset)
	if err != nil {
		return donors.PageResult{}, err
	}
	defer rows.Close()

	items := make([]donors.Donor, 0)
	for rows.Next() {
		d, err := scanDonor(rows)
		if err != nil {
			return donors.PageResult{}, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return donors.PageResult{}, err
	}

	return donors.PageResult{
		Items:      items,
		Page:       page,
		TotalPages: paging.TotalPages(total),
		Total:      total,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDonor(row rowScanner) (donors.Donor, error) {
	var d donors.Donor
	err := row.Scan(
		&d.ID,
		&d.CPF,
		&d.Nome,
		&d.TipoSanguineo,
		&d.DataNascimento,
		&d.Sexo,
		&d.Profissao,
		&d.EstadoNatal,
		&d.CidadeNatal,
		&d.EstadoResidencia,
		&d.CidadeResidencia,
		&d.EstadoCivil,
		&d.ContatoEmergencia,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}
