package recipients

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"sndot/internal/domain/people"
	"sndot/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/receptores", func(rr chi.Router) {
		rr.Get("/", listRecipientsHandler(svc))

		rr.Group(func(gr chi.Router) {
			gr.Use(middleware.RequireStaff)
			gr.Post("/cadastrar", createRecipientHandler(svc))
			gr.Get("/editar/{id}", getRecipientHandler(svc))
			gr.Post("/editar/{id}", updateRecipientHandler(svc))
			gr.Get("/deletar/{id}", confirmDeleteRecipientHandler(svc))
			gr.Post("/deletar/{id}", deleteRecipientHandler(svc))
		})
	})
}

type recipientResponse struct {
	ID                string `json:"id"`
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

	OrgaoNecessario    string `json:"orgao_necessario"`
	GravidadeCondicao  string `json:"gravidade_condicao"`
	CentroTransplante  string `json:"centro_transplante"`
	PosicaoListaEspera string `json:"posicao_lista_espera"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type recipientListResponse struct {
	Items      []recipientResponse `json:"items"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"total_pages"`
	Total      int                 `json:"total"`
}

func createRecipientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rec, err := svc.Register(r.Context(), in)
		if err != nil {
			writeRecipientError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toRecipientResponse(rec))
	}
}

func listRecipientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))

		res, err := svc.List(r.Context(), ListQuery{
			CPF:  r.URL.Query().Get("cpf"),
			Page: page,
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := recipientListResponse{
			Items:      make([]recipientResponse, 0, len(res.Items)),
			Page:       res.Page,
			TotalPages: res.TotalPages,
			Total:      res.Total,
		}
		for _, rec := range res.Items {
			out.Items = append(out.Items, toRecipientResponse(rec))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getRecipientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "receptor não encontrado", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toRecipientResponse(rec))
	}
}

func updateRecipientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rec, err := svc.Update(r.Context(), chi.URLParam(r, "id"), in)
		if err != nil {
			writeRecipientError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toRecipientResponse(rec))
	}
}

func confirmDeleteRecipientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "receptor não encontrado", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"mensagem": "Confirma a exclusão do receptor?",
			"receptor": toRecipientResponse(rec),
		})
	}
}

func deleteRecipientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			http.Error(w, "receptor não encontrado", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"mensagem": "Receptor excluído com sucesso.",
		})
	}
}

func writeRecipientError(w http.ResponseWriter, err error) {
	if fe, ok := people.AsFieldErrors(err); ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"erros": fe})
		return
	}
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "receptor não encontrado", http.StatusNotFound)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func toRecipientResponse(rec Recipient) recipientResponse {
	return recipientResponse{
		ID:                 rec.ID,
		CPF:                rec.CPF,
		Nome:               rec.Nome,
		TipoSanguineo:      rec.TipoSanguineo,
		DataNascimento:     rec.DataNascimento.Format(people.DateLayoutSlash),
		Sexo:               string(rec.Sexo),
		Profissao:          rec.Profissao,
		EstadoNatal:        rec.EstadoNatal,
		CidadeNatal:        rec.CidadeNatal,
		EstadoResidencia:   rec.EstadoResidencia,
		CidadeResidencia:   rec.CidadeResidencia,
		EstadoCivil:        rec.EstadoCivil,
		ContatoEmergencia:  rec.ContatoEmergencia,
		OrgaoNecessario:    rec.OrgaoNecessario,
		GravidadeCondicao:  rec.GravidadeCondicao,
		CentroTransplante:  rec.CentroTransplante,
		PosicaoListaEspera: rec.PosicaoListaEspera,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
