package postgres

import (
	"context"
	"database/sql"
	"strings"

	"sndot/internal/domain/organs"
)

type OrgansRepo struct {
	db *sql.DB
}

func NewOrgansRepo(db *sql.DB) *OrgansRepo {
	return &OrgansRepo{db: db}
}

func (r *OrgansRepo) Create(ctx context.Context, o organs.Organ) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orgaos (id, nome, descricao, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
	`, o.ID, o.Nome, o.Descricao, o.CreatedAt, o.UpdatedAt)
	return err
}

func (r *OrgansRepo) GetByID(ctx context.Context, id string) (organs.Organ, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return organs.Organ{}, organs.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, nome, descricao, created_at, updated_at
		FROM orgaos
		WHERE id = $1
	`, id)

	var o organs.Organ
	err := row.Scan(&o.ID, &o.Nome, &o.Descricao, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return organs.Organ{}, organs.ErrNotFound
	}
	return o, err
}

func (r *OrgansRepo) Update(ctx context.Context, o organs.Organ) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orgaos
		SET nome = $2, descricao = $3, updated_at = $4
		WHERE id = $1
	`, o.ID, o.Nome, o.Descricao, o.UpdatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return organs.ErrNotFound
	}
	return nil
}

func (r *OrgansRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orgaos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return organs.ErrNotFound
	}
	return nil
}

func (r *OrgansRepo) List(ctx context.Context) ([]organs.Organ, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, nome, descricao, created_at, updated_at
		FROM orgaos
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]organs.Organ, 0)
	for rows.Next() {
		var o organs.Organ
		if err := rows.Scan(&o.ID, &o.Nome, &o.Descricao, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
