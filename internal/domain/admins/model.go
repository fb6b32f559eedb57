package admins

import (
	"time"

	"sndot/internal/domain/people"
)

// Administrator é a conta que passa pelo portão de autenticação. SenhaHash
// guarda só o bcrypt; a senha em claro nunca é persistida nem logada.
type Administrator struct {
	ID string
	people.Person

	NomeUsuario string
	SenhaHash   string

	// Staff é a flag de privilégio exigida no login. Contas criadas pelo
	// cadastro já nascem staff; a flag existe para permitir desativar
	// acesso sem apagar o registro.
	Staff bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
