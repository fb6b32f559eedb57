package postgres

import (
	"context"
	"database/sql"
	"strings"

	"sndot/internal/domain/centers"
)

type CentersRepo struct {
	db *sql.DB
}

func NewCentersRepo(db *sql.DB) *CentersRepo {
	return &CentersRepo{db: db}
}

func (r *CentersRepo) Create(ctx context.Context, c centers.Center) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO centros_distribuicao (id, nome, estado, cidade, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, c.ID, c.Nome, c.Estado, c.Cidade, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *CentersRepo) GetByID(ctx context.Context, id string) (centers.Center, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return centers.Center{}, centers.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, nome, estado, cidade, created_at, updated_at
		FROM centros_distribuicao
		WHERE id = $1
	`, id)

	var c centers.Center
	err := row.Scan(&c.ID, &c.Nome, &c.Estado, &c.Cidade, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return centers.Center{}, centers.ErrNotFound
	}
	return c, err
}

func (r *CentersRepo) Update(ctx context.Context, c centers.Center) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE centros_distribuicao
		SET nome = $2, estado = $3, cidade = $4, updated_at = $5
		WHERE id = $1
	`, c.ID, c.Nome, c.Estado, c.Cidade, c.UpdatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return centers.ErrNotFound
	}
	return nil
}

func (r *CentersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM centros_distribuicao WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return centers.ErrNotFound
	}
	return nil
}

func (r *CentersRepo) List(ctx context.Context) ([]centers.Center, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, nome, estado, cidade, created_at, updated_at
		FROM centros_distribuicao
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]centers.Center, 0)
	for rows.Next() {
		var c centers.Center
		if err := rows.Scan(&c.ID, &c.Nome, &c.Estado, &c.Cidade, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
