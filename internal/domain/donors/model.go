package donors

import (
	"time"

	"sndot/internal/domain/people"
)

// Donor é um doador cadastrado. Não carrega campo próprio além da forma
// comum de pessoa; a distinção é a tabela em que vive.
type Donor struct {
	ID string
	people.Person

	CreatedAt time.Time
	UpdatedAt time.Time
}
