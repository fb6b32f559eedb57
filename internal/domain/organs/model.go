package organs

import "time"

// Organ é a referência de órgão usada pelos receptores. Só o nome é
// obrigatório; não há unicidade de nome.
type Organ struct {
	ID        string
	Nome      string
	Descricao string

	CreatedAt time.Time
	UpdatedAt time.Time
}
