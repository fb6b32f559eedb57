package memory

import (
	"context"

	"sndot/internal/domain/people"
)

// Directory consulta os três repositórios em memória para saber se um CPF
// já pertence a alguém. A ordem de consulta define o papel reportado.
type Directory struct {
	donors     *DonorsRepo
	recipients *RecipientsRepo
	admins     *AdminsRepo
}

func NewDirectory(d *DonorsRepo, r *RecipientsRepo, a *AdminsRepo) *Directory {
	return &Directory{donors: d, recipients: r, admins: a}
}

func (d *Directory) Lookup(_ context.Context, cpf string) (people.Occupancy, error) {
	if id, ok := d.donors.CPFOwner(cpf); ok {
		return people.Occupancy{Found: true, Role: people.RoleDoador, ID: id}, nil
	}
	if id, ok := d.recipients.CPFOwner(cpf); ok {
		return people.Occupancy{Found: true, Role: people.RoleReceptor, ID: id}, nil
	}
	if id, ok := d.admins.CPFOwner(cpf); ok {
		return people.Occupancy{Found: true, Role: people.RoleAdministrador, ID: id}, nil
	}
	return people.Occupancy{}, nil
}
