package middleware

import (
	"context"
	"net/http"
	"time"

	"sndot/internal/auth"
)

type ctxKey string

const sessionKey ctxKey = "session"

// AuthContext resolve o cookie de sessão e pendura a sessão no contexto.
// Não corta o request: rota pública segue sem sessão, e quem exige staff
// usa RequireStaff. Sessão expirada é tratada como ausente.
func AuthContext(sessions auth.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := sessions.Find(r.Context(), cookie.Value)
			if err != nil || sess.Expired(time.Now()) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetSession(ctx context.Context) (auth.Session, bool) {
	v := ctx.Value(sessionKey)
	if v == nil {
		return auth.Session{}, false
	}
	s, ok := v.(auth.Session)
	return s, ok
}

// RequireStaff barra quem não tem sessão (401) ou tem sessão sem a flag de
// staff (403). A mensagem não diz qual foi o caso além do status.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := GetSession(r.Context())
		if !ok {
			http.Error(w, "autenticação necessária", http.StatusUnauthorized)
			return
		}
		if !sess.Staff {
			http.Error(w, "permissão insuficiente", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
