package centers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sndot/internal/domain/people"
	"sndot/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/centros", func(cr chi.Router) {
		cr.Use(middleware.RequireStaff)
		cr.Get("/", listCentersHandler(svc))
		cr.Post("/adicionar", createCenterHandler(svc))
		cr.Get("/editar/{id}", getCenterHandler(svc))
		cr.Post("/editar/{id}", updateCenterHandler(svc))
		cr.Get("/excluir/{id}", confirmDeleteCenterHandler(svc))
		cr.Post("/excluir/{id}", deleteCenterHandler(svc))
	})
}

type centerResponse struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Estado    string    `json:"estado"`
	Cidade    string    `json:"cidade"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func createCenterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), in)
		if err != nil {
			writeCenterError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toCenterResponse(c))
	}
}

func listCentersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]centerResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCenterResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getCenterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "centro não encontrado", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toCenterResponse(c))
	}
}

func updateCenterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Update(r.Context(), chi.URLParam(r, "id"), in)
		if err != nil {
			writeCenterError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCenterResponse(c))
	}
}

func confirmDeleteCenterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "centro não encontrado", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"mensagem": "Confirma a exclusão do centro?",
			"centro":   toCenterResponse(c),
		})
	}
}

func deleteCenterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			http.Error(w, "centro não encontrado", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"mensagem": "Centro excluído com sucesso.",
		})
	}
}

func writeCenterError(w http.ResponseWriter, err error) {
	if fe, ok := people.AsFieldErrors(err); ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"erros": fe})
		return
	}
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "centro não encontrado", http.StatusNotFound)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func toCenterResponse(c Center) centerResponse {
	return centerResponse{
		ID:        c.ID,
		Nome:      c.Nome,
		Estado:    c.Estado,
		Cidade:    c.Cidade,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
