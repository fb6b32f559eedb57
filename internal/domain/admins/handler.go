package admins

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sndot/internal/auth"
	"sndot/internal/domain/people"
	"sndot/internal/middleware"
)

// RegisterRoutes liga as rotas de administrador e também o portão de
// autenticação (login/logout/painel), já que é este módulo que conhece as
// credenciais.
func RegisterRoutes(r chi.Router, svc *Service, sessions auth.Store, sessionTTL time.Duration) {
	r.Post("/login", loginHandler(svc, sessions, sessionTTL))

	r.Group(func(gr chi.Router) {
		gr.Use(middleware.RequireStaff)
		gr.Post("/logout", logoutHandler(sessions))
		gr.Get("/painel", painelHandler())
	})

	r.Route("/administradores", func(ar chi.Router) {
		// Cadastro fica aberto, como no sistema original: é o caminho de
		// bootstrap da primeira conta.
		ar.Post("/cadastrar", createAdminHandler(svc))

		ar.Group(func(gr chi.Router) {
			gr.Use(middleware.RequireStaff)
			gr.Get("/", listAdminsHandler(svc))
			gr.Get("/{id}", getAdminHandler(svc))
			gr.Get("/editar/{id}", getAdminHandler(svc))
			gr.Post("/editar/{id}", updateAdminHandler(svc))
			gr.Get("/excluir/{id}", confirmDeleteAdminHandler(svc))
			gr.Post("/excluir/{id}", deleteAdminHandler(svc))
		})
	})
}

// adminResponse nunca expõe o hash da senha.
type adminResponse struct {
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
	NomeUsuario       string `json:"nome_usuario"`
	Staff             bool   `json:"staff"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type loginRequest struct {
	NomeUsuario string `json:"nome_usuario"`
	Senha       string `json:"senha"`
}

func loginHandler(svc *Service, sessions auth.Store, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Login(r.Context(), req.NomeUsuario, req.Senha)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				writeJSON(w, http.StatusUnauthorized, map[string]string{
					"mensagem": MsgInvalidCredentials,
				})
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		now := time.Now()
		sess := auth.Session{
			ID:          uuid.NewString(),
			AdminID:     a.ID,
			NomeUsuario: a.NomeUsuario,
			Staff:       a.Staff,
			CreatedAt:   now,
			ExpiresAt:   now.Add(ttl),
		}
		if err := sessions.Save(r.Context(), sess); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     auth.CookieName,
			Value:    sess.ID,
			Path:     "/",
			Expires:  sess.ExpiresAt,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		writeJSON(w, http.StatusOK, map[string]string{
			"mensagem":     "Login efetuado com sucesso.",
			"nome_usuario": a.NomeUsuario,
		})
	}
}

func logoutHandler(sessions auth.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := middleware.GetSession(r.Context()); ok {
			_ = sessions.Delete(r.Context(), sess.ID)
		}

		// expira o cookie no cliente
		http.SetCookie(w, &http.Cookie{
			Name:     auth.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		writeJSON(w, http.StatusOK, map[string]string{"mensagem": "Sessão encerrada."})
	}
}

func painelHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.GetSession(r.Context())
		writeJSON(w, http.StatusOK, map[string]string{
			"painel":       "admin",
			"nome_usuario": sess.NomeUsuario,
		})
	}
}

func createAdminHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Register(r.Context(), in)
		if err != nil {
			writeAdminError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAdminResponse(a))
	}
}

func listAdminsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]adminResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAdminResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getAdminHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "administrador não encontrado", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toAdminResponse(a))
	}
}

func updateAdminHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "id"), in)
		if err != nil {
			writeAdminError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAdminResponse(a))
	}
}

func confirmDeleteAdminHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "administrador não encontrado", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"mensagem":      "Confirma a exclusão do administrador?",
			"administrador": toAdminResponse(a),
		})
	}
}

func deleteAdminHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			http.Error(w, "administrador não encontrado", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"mensagem": "Administrador excluído com sucesso.",
		})
	}
}

func writeAdminError(w http.ResponseWriter, err error) {
	if fe, ok := people.AsFieldErrors(err); ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"erros": fe})
		return
	}
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "administrador não encontrado", http.StatusNotFound)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func toAdminResponse(a Administrator) adminResponse {
	return adminResponse{
		ID:                a.ID,
		CPF:               a.CPF,
		Nome:              a.Nome,
		TipoSanguineo:     a.TipoSanguineo,
		DataNascimento:    a.DataNascimento.Format(people.DateLayoutSlash),
		Sexo:              string(a.Sexo),
		Profissao:         a.Profissao,
		EstadoNatal:       a.EstadoNatal,
		CidadeNatal:       a.CidadeNatal,
		EstadoResidencia:  a.EstadoResidencia,
		CidadeResidencia:  a.CidadeResidencia,
		EstadoCivil:       a.EstadoCivil,
		ContatoEmergencia: a.ContatoEmergencia,
		NomeUsuario:       a.NomeUsuario,
		Staff:             a.Staff,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
