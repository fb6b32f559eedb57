package donors

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
	r.Route("/doadores", func(dr chi.Router) {
		// Listagem é pública, como a página original.
		dr.Get("/listar", listDonorsHandler(svc))

		dr.Group(func(gr chi.Router) {
			gr.Use(middleware.RequireStaff)
			gr.Post("/cadastrar", createDonorHandler(svc))
			gr.Get("/editar/{id}", getDonorHandler(svc))
			gr.Post("/editar/{id}", updateDonorHandler(svc))
			gr.Get("/deletar/{id}", confirmDeleteDonorHandler(svc))
			gr.Post("/deletar/{id}", deleteDonorHandler(svc))
		})
	})
}

type donorResponse struct {
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

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type donorListResponse struct {
	Items      []donorResponse `json:"items"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	Total      int             `json:"total"`
}

func createDonorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in people.Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Register(r.Context(), in)
		if err != nil {
			writeDonorError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toDonorResponse(d))
	}
}

func listDonorsHandler(svc *Service) http.HandlerFunc {
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

		out := donorListResponse{
			Items:      make([]donorResponse, 0, len(res.Items)),
			Page:       res.Page,
			TotalPages: res.TotalPages,
			Total:      res.Total,
		}
		for _, d := range res.Items {
			out.Items = append(out.Items, toDonorResponse(d))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getDonorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "doador não encontrado", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toDonorResponse(d))
	}
}

func updateDonorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in people.Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Update(r.Context(), chi.URLParam(r, "id"), in)
		if err != nil {
			writeDonorError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toDonorResponse(d))
	}
}

// confirmDeleteDonorHandler é o GET de confirmação: devolve o registro que
// o POST em seguida apaga, no lugar da página de confirmação original.
func confirmDeleteDonorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "doador não encontrado", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"mensagem": "Confirma a exclusão do doador?",
			"doador":   toDonorResponse(d),
		})
	}
}

func deleteDonorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			http.Error(w, "doador não encontrado", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"mensagem": "Doador excluído com sucesso.",
		})
	}
}

func writeDonorError(w http.ResponseWriter, err error) {
	if fe, ok := people.AsFieldErrors(err); ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"erros": fe})
		return
	}
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "doador não encontrado", http.StatusNotFound)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func toDonorResponse(d Donor) donorResponse {
	return donorResponse{
		ID:                d.ID,
		CPF:               d.CPF,
		Nome:              d.Nome,
		TipoSanguineo:     d.TipoSanguineo,
		DataNascimento:    d.DataNascimento.Format(people.DateLayoutSlash),
		Sexo:              string(d.Sexo),
		Profissao:         d.Profissao,
		EstadoNatal:       d.EstadoNatal,
		CidadeNatal:       d.CidadeNatal,
		EstadoResidencia:  d.EstadoResidencia,
		CidadeResidencia:  d.CidadeResidencia,
		EstadoCivil:       d.EstadoCivil,
		ContatoEmergencia: d.ContatoEmergencia,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// writeJSON é duplicado de propósito nos handlers de cada módulo para não
// criar helpers compartilhados cedo demais.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
