package people

import (
	"regexp"
	"slices"
	"strings"
	"time"
)

// Formatos aceitos para data_nascimento: o formato do arquivo de importação
// e o formato ISO que o formulário web envia.
const (
	DateLayoutSlash = "2006/01/02"
	DateLayoutISO   = "2006-01-02"
)

var cpfDigits = regexp.MustCompile(`^\d{11}$`)

// NormalizeCPF remove pontos e traços. Não valida; só canoniza.
func NormalizeCPF(cpf string) string {
	cpf = strings.TrimSpace(cpf)
	cpf = strings.ReplaceAll(cpf, ".", "")
	cpf = strings.ReplaceAll(cpf, "-", "")
	return cpf
}

// ParseBirthDate aceita YYYY/MM/DD (importação) e YYYY-MM-DD (formulário).
func ParseBirthDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayoutSlash, s); err == nil {
		return t, nil
	}
	return time.Parse(DateLayoutISO, s)
}

// Input é o formulário cru, tudo string, antes de qualquer normalização.
type Input struct {
	CPF               string `json:"cpf"`
	Nome              string `json:"nome"`
	TipoSanguineo     string `json:"tipo_sanguineo"`
	DataNascimento    string `json:"data_nascimento"`
	Sexo              string `json:"sexo"`
	Profissao         string `json:"profissao"`
	OutraProfissao    string `json:"outra_profissao"`
	EstadoNatal       string `json:"estado_natal"`
	CidadeNatal       string `json:"cidade_natal"`
	EstadoResidencia  string `json:"estado_residencia"`
	CidadeResidencia  string `json:"cidade_residencia"`
	EstadoCivil       string `json:"estado_civil"`
	ContatoEmergencia string `json:"contato_emergencia"`
}

const msgObrigatorio = "Este campo é obrigatório."

// Validate aplica as regras comuns de doador/receptor/administrador e
// devolve a Person normalizada ou o mapa de erros por campo. As mesmas
// regras valem para cadastro e edição.
func Validate(in Input) (Person, FieldErrors) {
	errs := FieldErrors{}

	cpf := NormalizeCPF(in.CPF)
	if !cpfDigits.MatchString(cpf) {
		errs.Add("cpf", "CPF deve conter exatamente 11 dígitos numéricos.")
	}

	nome := strings.TrimSpace(in.Nome)
	if nome == "" {
		errs.Add("nome", msgObrigatorio)
	}

	tipo := strings.TrimSpace(in.TipoSanguineo)
	if tipo == "" {
		errs.Add("tipo_sanguineo", msgObrigatorio)
	} else if !slices.Contains(TiposSanguineos, tipo) {
		errs.Add("tipo_sanguineo", "Escolha uma opção válida.")
	}

	var nascimento time.Time
	if strings.TrimSpace(in.DataNascimento) == "" {
		errs.Add("data_nascimento", msgObrigatorio)
	} else {
		t, err := ParseBirthDate(in.DataNascimento)
		if err != nil {
			errs.Add("data_nascimento", "Data inválida. Use o formato YYYY/MM/DD.")
		} else {
			nascimento = t
		}
	}

	sexo := strings.TrimSpace(in.Sexo)
	if sexo == "" {
		errs.Add("sexo", msgObrigatorio)
	} else if sexo != string(SexoMasculino) && sexo != string(SexoFeminino) {
		errs.Add("sexo", "Escolha uma opção válida.")
	}

	profissao := strings.TrimSpace(in.Profissao)
	outra := strings.TrimSpace(in.OutraProfissao)
	switch {
	case profissao == "":
		errs.Add("profissao", msgObrigatorio)
	case !slices.Contains(Profissoes, profissao):
		errs.Add("profissao", "Escolha uma opção válida.")
	case profissao == ProfissaoOutra && outra == "":
		errs.Add("outra_profissao", "Por favor, especifique a outra profissão.")
	case profissao == ProfissaoOutra:
		// o texto livre substitui o valor gravado
		profissao = outra
	}

	estadoNatal := strings.TrimSpace(in.EstadoNatal)
	if estadoNatal != "" && !slices.Contains(UFs, estadoNatal) {
		errs.Add("estado_natal", "Escolha uma opção válida.")
	}
	estadoResidencia := strings.TrimSpace(in.EstadoResidencia)
	if estadoResidencia != "" && !slices.Contains(UFs, estadoResidencia) {
		errs.Add("estado_residencia", "Escolha uma opção válida.")
	}

	cidadeNatal := strings.TrimSpace(in.CidadeNatal)
	if estadoNatal != "" && cidadeNatal == "" {
		errs.Add("cidade_natal", "Cidade natal é obrigatória quando o estado é selecionado.")
	}
	cidadeResidencia := strings.TrimSpace(in.CidadeResidencia)
	if estadoResidencia != "" && cidadeResidencia == "" {
		errs.Add("cidade_residencia", "Cidade de residência é obrigatória quando o estado é selecionado.")
	}

	estadoCivil := strings.TrimSpace(in.EstadoCivil)
	switch {
	case estadoCivil == "":
		errs.Add("estado_civil", msgObrigatorio)
	case !estadoCivilConhecido(estadoCivil):
		errs.Add("estado_civil", "Escolha uma opção válida.")
	case sexo == string(SexoMasculino) && slices.Contains(EstadosCivisFemininos, estadoCivil):
		errs.Add("estado_civil", "Estado civil selecionado não corresponde ao sexo masculino.")
	case sexo == string(SexoFeminino) && slices.Contains(EstadosCivisMasculinos, estadoCivil):
		errs.Add("estado_civil", "Estado civil selecionado não corresponde ao sexo feminino.")
	}

	if !errs.Empty() {
		return Person{}, errs
	}

	return Person{
		CPF:               cpf,
		Nome:              nome,
		TipoSanguineo:     tipo,
		DataNascimento:    nascimento,
		Sexo:              Sexo(sexo),
		Profissao:         profissao,
		EstadoNatal:       estadoNatal,
		CidadeNatal:       cidadeNatal,
		EstadoResidencia:  estadoResidencia,
		CidadeResidencia:  cidadeResidencia,
		EstadoCivil:       estadoCivil,
		ContatoEmergencia: strings.TrimSpace(in.ContatoEmergencia),
	}, nil
}

func estadoCivilConhecido(v string) bool {
	return v == EstadoCivilNeutro ||
		slices.Contains(EstadosCivisMasculinos, v) ||
		slices.Contains(EstadosCivisFemininos, v)
}
