package postgres

import (
	"context"
	"database/sql"
	"strings"

	"sndot/internal/domain/paging"
	"sndot/internal/domain/recipients"
)

type RecipientsRepo struct {
	db *sql.DB
}

func NewRecipientsRepo(db *sql.DB) *RecipientsRepo {
	return &RecipientsRepo{db: db}
}

const recipientCols = `
	id, cpf, nome, tipo_sanguineo, data_nascimento, sexo, profissao,
	estado_natal, cidade_natal, estado_residencia, cidade_residencia,
	estado_civil, contato_emergencia,
	orgao_necessario, gravidade_condicao, centro_transplante, posicao_lista_espera,
	created_at, updated_at
`

func (r *RecipientsRepo) Create(ctx context.Context, rec recipients.Recipient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO receptores (`+recipientCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
	`, recipientArgs(rec)...)
	if isUniqueViolation(err) {
		return recipients.ErrDuplicateCPF
	}
	return err
}

// CreateBatch insere tudo numa transação só; qualquer falha desfaz a
// importação inteira.
func (r *RecipientsRepo) CreateBatch(ctx context.Context, recs []recipients.Recipient) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, rec := range recs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO receptores (`+recipientCols+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		`, recipientArgs(rec)...)
		if isUniqueViolation(err) {
			return recipients.ErrDuplicateCPF
		}
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *RecipientsRepo) GetByID(ctx context.Context, id string) (recipients.Recipient, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return recipients.Recipient{}, recipients.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+recipientCols+`
		FROM receptores
		WHERE id = $1
	`, id)

	rec, err := scanRecipient(row)
	if err == sql.ErrNoRows {
		return recipients.Recipient{}, recipients.ErrNotFound
	}
	return rec, err
}

func (r *RecipientsRepo) Update(ctx context.Context, rec recipients.Recipient) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE receptores
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
			orgao_necessario = $14,
			gravidade_condicao = $15,
			centro_transplante = $16,
			posicao_lista_espera = $17,
			updated_at = $18
		WHERE id = $1
	`,
		rec.ID,
		rec.CPF,
		rec.Nome,
		rec.TipoSanguineo,
		rec.DataNascimento,
		rec.Sexo,
		rec.Profissao,
		rec.EstadoNatal,
		rec.CidadeNatal,
		rec.EstadoResidencia,
		rec.CidadeResidencia,
		rec.EstadoCivil,
		rec.ContatoEmergencia,
		rec.OrgaoNecessario,
		rec.GravidadeCondicao,
		rec.CentroTransplante,
		rec.PosicaoListaEspera,
		rec.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return recipients.ErrDuplicateCPF
	}
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return recipients.ErrNotFound
	}
	return nil
}

func (r *RecipientsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM receptores WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return recipients.ErrNotFound
	}
	return nil
}

func (r *RecipientsRepo) List(ctx context.Context, q recipients.ListQuery) (recipients.PageResult, error) {
	filter := "%" + strings.TrimSpace(q.CPF) + "%"

	var total int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM receptores WHERE cpf ILIKE $1
	`, filter).Scan(&total)
	if err != nil {
		return recipients.PageResult{}, err
	}

	page := paging.Clamp(q.Page, total)
	offset, limit := paging.Window(page)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recipientCols+`
		FROM receptores
		WHERE cpf ILIKE $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`, filter, limit, offset)
	if err != nil {
		return recipients.PageResult{}, err
	}
	defer rows.Close()

	items := make([]recipients.Recipient, 0)
	for rows.Next() {
		rec, err := scanRecipient(rows)
		if err != nil {
			return recipients.PageResult{}, err
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return recipients.PageResult{}, err
	}

	return recipients.PageResult{
		Items:      items,
		Page:       page,
		TotalPages: paging.TotalPages(total),
		Total:      total,
	}, nil
}

func recipientArgs(rec recipients.Recipient) []any {
	return []any{
		rec.ID,
		rec.CPF,
		rec.Nome,
		rec.TipoSanguineo,
		rec.DataNascimento,
		rec.Sexo,
		rec.Profissao,
		rec.EstadoNatal,
		rec.CidadeNatal,
		rec.EstadoResidencia,
		rec.CidadeResidencia,
		rec.EstadoCivil,
		rec.ContatoEmergencia,
		rec.OrgaoNecessario,
		rec.GravidadeCondicao,
		rec.CentroTransplante,
		rec.PosicaoListaEspera,
		rec.CreatedAt,
		rec.UpdatedAt,
	}
}

func scanRecipient(row rowScanner) (recipients.Recipient, error) {
	var rec recipients.Recipient
	err := row.Scan(
		&rec.ID,
		&rec.CPF,
		&rec.Nome,
		&rec.TipoSanguineo,
		&rec.DataNascimento,
		&rec.Sexo,
		&rec.Profissao,
		&rec.EstadoNatal,
		&rec.CidadeNatal,
		&rec.EstadoResidencia,
		&rec.CidadeResidencia,
		&rec.EstadoCivil,
		&rec.ContatoEmergencia,
		&rec.OrgaoNecessario,
		&rec.GravidadeCondicao,
		&rec.CentroTransplante,
		&rec.PosicaoListaEspera,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	return rec, err
}
