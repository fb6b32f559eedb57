// Package importer lê o arquivo JSON de carga em massa e mapeia cada
// registro para a entidade alvo. A importação não passa pela validação de
// formulário: a carga confia no arquivo de origem (divergência deliberada,
// herdada do sistema que este serviço substitui e documentada no DESIGN).
//
// A política de falha é tudo-ou-nada: o arquivo inteiro é interpretado
// antes de qualquer escrita, e a persistência acontece num único lote.
// O primeiro registro malformado aborta com o índice do registro no erro.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"sndot/internal/domain/donors"
	"sndot/internal/domain/people"
	"sndot/internal/domain/recipients"
)

// RecordError aponta qual registro do arquivo falhou (índice a partir de 1,
// como uma pessoa contaria os itens do arquivo).
type RecordError struct {
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("registro %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// item é um elemento do array: os campos vêm embrulhados em "dados".
// Um eventual "id" dentro de dados é ignorado na decodificação: chaves
// primárias são sempre atribuídas pelo servidor.
type item struct {
	Dados json.RawMessage `json:"dados"`
}

type donorDados struct {
	CPF               string `json:"cpf"`
	Nome              string `json:"nome"`
	TipoSanguineo     string `json:"tipo_sanguineo"`
	DataNascimento    string `json:"data_nascimento"`
	Sexo              string `json:"sexo"`
	Profissao         string `json:"profissao"`
	EstadoNatal       string `json:"estado_natal"`
	CidadeNatal       string `json:"cidade_natal"`
	EstadoResidencia  string `json:"estado_residencia"`
	CidadeResidencia  string `json:"cidade_residencia"`
	EstadoCivil       string `json:"estado_civil"`
	ContatoEmergencia string `json:"contato_emergencia"`
}

// recipientDados usa any nos campos que o arquivo manda com tipos
// heterogêneos (número, booleano); tudo vira string aparada.
type recipientDados struct {
	CPF            string `json:"cpf"`
	Nome           string `json:"nome"`
	DataNascimento string `json:"data_nascimento"`

	TipoSanguineo      any `json:"tipo_sanguineo"`
	Sexo               any `json:"sexo"`
	Profissao          any `json:"profissao"`
	EstadoNatal        any `json:"estado_natal"`
	CidadeNatal        any `json:"cidade_natal"`
	EstadoResidencia   any `json:"estado_residencia"`
	CidadeResidencia   any `json:"cidade_residencia"`
	EstadoCivil        any `json:"estado_civil"`
	ContatoEmergencia  any `json:"contato_emergencia"`
	OrgaoNecessario    any `json:"orgao_necessario"`
	GravidadeCondicao  any `json:"gravidade_condicao"`
	CentroTransplante  any `json:"centro_transplante"`
	PosicaoListaEspera any `json:"posicao_lista_espera"`
}

// ParseDonors interpreta o arquivo inteiro e devolve os doadores prontos
// para o lote, sem IDs (o serviço atribui na persistência).
func ParseDonors(r io.Reader) ([]donors.Donor, error) {
	items, err := decodeItems(r)
	if err != nil {
		return nil, err
	}

	out := make([]donors.Donor, 0, len(items))
	for i, it := range items {
		var d donorDados
		if err := json.Unmarshal(it.Dados, &d); err != nil {
			return nil, &RecordError{Index: i + 1, Err: err}
		}

		nascimento, err := people.ParseBirthDate(d.DataNascimento)
		if err != nil {
			return nil, &RecordError{Index: i + 1, Err: fmt.Errorf("data_nascimento %q: %w", d.DataNascimento, err)}
		}

		out = append(out, donors.Donor{
			Person: people.Person{
				CPF:               strings.TrimSpace(d.CPF),
				Nome:              strings.TrimSpace(d.Nome),
				TipoSanguineo:     strings.TrimSpace(d.TipoSanguineo),
				DataNascimento:    nascimento,
				Sexo:              people.Sexo(strings.TrimSpace(d.Sexo)),
				Profissao:         strings.TrimSpace(d.Profissao),
				EstadoNatal:       strings.TrimSpace(d.EstadoNatal),
				CidadeNatal:       strings.TrimSpace(d.CidadeNatal),
				EstadoResidencia:  strings.TrimSpace(d.EstadoResidencia),
				CidadeResidencia:  strings.TrimSpace(d.CidadeResidencia),
				EstadoCivil:       strings.TrimSpace(d.EstadoCivil),
				ContatoEmergencia: strings.TrimSpace(d.ContatoEmergencia),
			},
		})
	}
	return out, nil
}

// ParseRecipients interpreta o arquivo de receptores, coagindo os campos
// de tipos mistos para string.
func ParseRecipients(r io.Reader) ([]recipients.Recipient, error) {
	items, err := decodeItems(r)
	if err != nil {
		return nil, err
	}

	out := make([]recipients.Recipient, 0, len(items))
	for i, it := range items {
		var d recipientDados
		if err := json.Unmarshal(it.Dados, &d); err != nil {
			return nil, &RecordError{Index: i + 1, Err: err}
		}

		nascimento, err := people.ParseBirthDate(d.DataNascimento)
		if err != nil {
			return nil, &RecordError{Index: i + 1, Err: fmt.Errorf("data_nascimento %q: %w", d.DataNascimento, err)}
		}

		out = append(out, recipients.Recipient{
			Person: people.Person{
				CPF:               strings.TrimSpace(d.CPF),
				Nome:              strings.TrimSpace(d.Nome),
				TipoSanguineo:     asTrimmedString(d.TipoSanguineo),
				DataNascimento:    nascimento,
				Sexo:              people.Sexo(asTrimmedString(d.Sexo)),
				Profissao:         asTrimmedString(d.Profissao),
				EstadoNatal:       asTrimmedString(d.EstadoNatal),
				CidadeNatal:       asTrimmedString(d.CidadeNatal),
				EstadoResidencia:  asTrimmedString(d.EstadoResidencia),
				CidadeResidencia:  asTrimmedString(d.CidadeResidencia),
				EstadoCivil:       asTrimmedString(d.EstadoCivil),
				ContatoEmergencia: asTrimmedString(d.ContatoEmergencia),
			},
			OrgaoNecessario:    asTrimmedString(d.OrgaoNecessario),
			GravidadeCondicao:  asTrimmedString(d.GravidadeCondicao),
			CentroTransplante:  asTrimmedString(d.CentroTransplante),
			PosicaoListaEspera: asTrimmedString(d.PosicaoListaEspera),
		})
	}
	return out, nil
}

func decodeItems(r io.Reader) ([]item, error) {
	var items []item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("arquivo JSON inválido: %w", err)
	}
	return items, nil
}

// asTrimmedString coage número, booleano ou string para string aparada.
// nil vira string vazia.
func asTrimmedString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
