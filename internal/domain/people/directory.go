package people

import "context"

// Role identifica em qual cadastro um CPF já aparece.
type Role string

const (
	RoleDoador        Role = "doador"
	RoleReceptor      Role = "receptor"
	RoleAdministrador Role = "administrador"
)

// Occupancy é o resultado da busca de CPF no diretório: qual cadastro o
// contém e o ID do registro dono, para permitir a exclusão do próprio
// registro na edição.
type Occupancy struct {
	Found bool
	Role  Role
	ID    string
}

// Directory responde se um CPF já está em qualquer um dos três cadastros
// de pessoas. O CPF deve chegar normalizado.
type Directory interface {
	Lookup(ctx context.Context, cpf string) (Occupancy, error)
}

// CheckCPF consulta o diretório e devolve a mensagem de "já cadastrado"
// correspondente. self identifica o registro sendo editado (pode ser vazio
// no cadastro); o próprio registro nunca conflita consigo mesmo.
func CheckCPF(ctx context.Context, dir Directory, cpf string, selfRole Role, selfID string) (FieldErrors, error) {
	occ, err := dir.Lookup(ctx, cpf)
	if err != nil {
		return nil, err
	}
	if !occ.Found {
		return nil, nil
	}
	if occ.Role == selfRole && occ.ID == selfID && selfID != "" {
		return nil, nil
	}

	errs := FieldErrors{}
	errs.Add("cpf", MsgCPFTaken(occ.Role))
	return errs, nil
}

func MsgCPFTaken(role Role) string {
	return "Este CPF já está cadastrado como " + string(role) + "."
}
