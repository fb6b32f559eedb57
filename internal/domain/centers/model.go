package centers

import "time"

// Center é um centro de distribuição de órgãos.
type Center struct {
	ID     string
	Nome   string
	Estado string
	Cidade string

	CreatedAt time.Time
	UpdatedAt time.Time
}
