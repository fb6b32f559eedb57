package importer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDonors_OK(t *testing.T) {
	body := `[
		{"dados": {
			"id": 7,
			"cpf": " 11122233344 ",
			"nome": "  Ana  ",
			"tipo_sanguineo": "O+",
			"data_nascimento": "1991/07/15",
			"sexo": "F",
			"profissao": "Professor",
			"estado_natal": "BA",
			"cidade_natal": "Salvador",
			"estado_residencia": "BA",
			"cidade_residencia": "Salvador",
			"estado_civil": "Solteira",
			"contato_emergencia": "71 99999-0000"
		}}
	]`

	ds, err := ParseDonors(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, ds, 1)

	d := ds[0]
	assert.Equal(t, "11122233344", d.CPF)
	assert.Equal(t, "Ana", d.Nome)
	assert.Equal(t, "1991/07/15", d.DataNascimento.Format("2006/01/02"))
	assert.Empty(t, d.ID, "id do arquivo deve ser descartado")
}

func TestParseDonors_DataInvalidaApontaRegistro(t *testing.T) {
	body := `[
		{"dados": {"cpf": "1", "nome": "A", "data_nascimento": "1990/01/01"}},
		{"dados": {"cpf": "2", "nome": "B", "data_nascimento": "15-07-1991"}}
	]`

	_, err := ParseDonors(strings.NewReader(body))
	require.Error(t, err)

	var re *RecordError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 2, re.Index)
	assert.Contains(t, err.Error(), "registro 2")
}

func TestParseDonors_ArquivoInvalido(t *testing.T) {
	_, err := ParseDonors(strings.NewReader(`{"não é": "um array"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arquivo JSON inválido")
}

func TestParseRecipients_CoercaoDeTipos(t *testing.T) {
	body := `[
		{"dados": {
			"cpf": "55566677788",
			"nome": "Bruno",
			"data_nascimento": "1980/03/09",
			"tipo_sanguineo": "AB-",
			"sexo": "M",
			"profissao": "Estudante",
			"estado_civil": "Solteiro",
			"orgao_necessario": "Rim",
			"gravidade_condicao": 3,
			"centro_transplante": " Hospital das Clínicas ",
			"posicao_lista_espera": 12.5,
			"contato_emergencia": null
		}}
	]`

	recs, err := ParseRecipients(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "3", rec.GravidadeCondicao)
	assert.Equal(t, "12.5", rec.PosicaoListaEspera)
	assert.Equal(t, "Hospital das Clínicas", rec.CentroTransplante)
	assert.Equal(t, "", rec.ContatoEmergencia)
}

func TestParseRecipients_BooleanoViraString(t *testing.T) {
	body := `[
		{"dados": {
			"cpf": "1", "nome": "X", "data_nascimento": "2000/01/01",
			"posicao_lista_espera": true
		}}
	]`

	recs, err := ParseRecipients(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "true", recs[0].PosicaoListaEspera)
}

func TestParseDonors_ArrayVazio(t *testing.T) {
	ds, err := ParseDonors(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Empty(t, ds)
}
