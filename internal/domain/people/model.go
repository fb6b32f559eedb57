package people

import "time"

// Sexo registrado no cadastro.
type Sexo string

const (
	SexoMasculino Sexo = "M"
	SexoFeminino  Sexo = "F"
)

// TiposSanguineos são os oito tipos aceitos nos formulários.
var TiposSanguineos = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// Profissoes são as opções fechadas do formulário. "Outra" exige o campo
// livre outra_profissao, que substitui o valor gravado.
var Profissoes = []string{"Engenheiro", "Médico", "Professor", "Estudante", "Aposentado", ProfissaoOutra}

const ProfissaoOutra = "Outra"

// Estados civis particionados por gênero. "União Estável" vale para ambos.
var (
	EstadosCivisMasculinos = []string{"Solteiro", "Casado", "Divorciado", "Viúvo"}
	EstadosCivisFemininos  = []string{"Solteira", "Casada", "Divorciada", "Viúva"}
	EstadoCivilNeutro      = "União Estável"
)

// UFs são as 27 unidades federativas aceitas nos campos de estado.
var UFs = []string{
	"AC", "AL", "AM", "AP", "BA", "CE", "DF", "ES", "GO",
	"MA", "MG", "MS", "MT", "PA", "PB", "PE", "PI", "PR",
	"RJ", "RN", "RO", "RR", "RS", "SC", "SE", "SP", "TO",
}

// Person é a forma comum de doador, receptor e administrador.
// CPF fica sempre normalizado (11 dígitos, sem pontuação).
type Person struct {
	CPF            string
	Nome           string
	TipoSanguineo  string
	DataNascimento time.Time
	Sexo           Sexo

	// Valor final: ou uma das Profissoes, ou o texto livre quando "Outra".
	Profissao string

	EstadoNatal      string
	CidadeNatal      string
	EstadoResidencia string
	CidadeResidencia string

	EstadoCivil       string
	ContatoEmergencia string
}
