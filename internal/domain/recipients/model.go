package recipients

import (
	"time"

	"sndot/internal/domain/people"
)

// Recipient estende a forma comum de pessoa com os campos da fila de
// transplante. posicao_lista_espera fica como texto: o arquivo de
// importação manda número, booleano ou string e tudo vira string aparada.
type Recipient struct {
	ID string
	people.Person

	OrgaoNecessario    string
	GravidadeCondicao  string
	CentroTransplante  string
	PosicaoListaEspera string

	CreatedAt time.Time
	UpdatedAt time.Time
}
