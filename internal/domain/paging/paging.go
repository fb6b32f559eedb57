// Package paging centraliza a paginação das listagens: página fixa de 10
// itens e a semântica tolerante de "me dá uma página válida": página
// inválida ou ausente vira a primeira, página além do fim vira a última.
package paging

const PageSize = 10

// TotalPages nunca devolve 0: uma listagem vazia tem uma página vazia.
func TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	pages := total / PageSize
	if total%PageSize != 0 {
		pages++
	}
	return pages
}

// Clamp normaliza o número de página pedido contra o total de itens.
func Clamp(page, total int) int {
	if page < 1 {
		return 1
	}
	if last := TotalPages(total); page > last {
		return last
	}
	return page
}

// Window devolve offset e limite para a página já normalizada.
func Window(page int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize, PageSize
}
