package people

import (
	"sort"
	"strings"
)

// FieldErrors acumula mensagens de validação por campo, no espírito dos
// erros de formulário: o handler devolve o mapa inteiro num 400.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// Error junta tudo numa linha só; útil em logs e em testes.
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(fe[f], "; "))
	}
	return strings.Join(parts, " | ")
}

// AsFieldErrors devolve o mapa de campos quando err veio da validação.
func AsFieldErrors(err error) (FieldErrors, bool) {
	fe, ok := err.(FieldErrors)
	return fe, ok
}
