package organs

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sndot/internal/middleware"
)

// Todas as rotas de órgão exigem sessão de staff, como no sistema original.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/orgaos", func(or chi.Router) {
		or.Use(middleware.RequireStaff)
		or.Get("/", listOrgansHandler(svc))
		or.Post("/adicionar", createOrganHandler(svc))
		or.Get("/editar/{id}", getOrganHandler(svc))
		or.Post("/editar/{id}", updateOrganHandler(svc))
		or.Get("/excluir/{id}", confirmDeleteOrganHandler(svc))
		or.Post("/excluir/{id}", deleteOrganHandler(svc))
	})
}

type organResponse struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Descricao string    `json:"descricao"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func createOrganHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		o, err := svc.Create(r.Context(), in)
		if err != nil {
			writeOrganError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toOrganResponse(o))
	}
}

func listOrgansHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]organResponse, 0, len(items))
		for _, o := range items {
			out = append(out, toOrganResponse(o))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getOrganHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "órgão não encontrado", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toOrganResponse(o))
	}
}

func updateOrganHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		o, err := svc.Update(r.Context(), chi.URLParam(r, "id"), in)
		if err != nil {
			writeOrganError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toOrganResponse(o))
	}
}

func confirmDeleteOrganHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "órgão não encontrado", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"mensagem": "Confirma a exclusão do órgão?",
			"orgao":    toOrganResponse(o),
		})
	}
}

func deleteOrganHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			http.Error(w, "órgão não encontrado", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"mensagem": "Órgão excluído com sucesso.",
		})
	}
}

func writeOrganError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNomeObrigatorio):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"erros": map[string][]string{"nome": {"O nome do órgão é obrigatório."}},
		})
	case errors.Is(err, ErrNotFound):
		http.Error(w, "órgão não encontrado", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toOrganResponse(o Organ) organResponse {
	return organResponse{
		ID:        o.ID,
		Nome:      o.Nome,
		Descricao: o.Descricao,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
