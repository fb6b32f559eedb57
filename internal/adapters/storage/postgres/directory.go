package postgres

import (
	"context"
	"database/sql"

	"sndot/internal/domain/people"
)

// Directory procura um CPF nas três tabelas de pessoas. A ordem das
// consultas define o papel reportado quando há ocupante.
type Directory struct {
	db *sql.DB
}

func NewDirectory(db *sql.DB) *Directory {
	return &Directory{db: db}
}

func (d *Directory) Lookup(ctx context.Context, cpf string) (people.Occupancy, error) {
	lookups := []struct {
		query string
		role  people.Role
	}{
		{`SELECT id FROM doadores WHERE cpf = $1`, people.RoleDoador},
		{`SELECT id FROM receptores WHERE cpf = $1`, people.RoleReceptor},
		{`SELECT id FROM administradores WHERE cpf = $1`, people.RoleAdministrador},
	}

	for _, l := range lookups {
		var id string
		err := d.db.QueryRowContext(ctx, l.query, cpf).Scan(&id)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return people.Occupancy{}, err
		}
		return people.Occupancy{Found: true, Role: l.role, ID: id}, nil
	}

	return people.Occupancy{}, nil
}
