package router

import (
	"database/sql"
	"encoding/json"
	"net/http"

	memsess "sndot/internal/adapters/session/memory"
	redsess "sndot/internal/adapters/session/redis"
	mem "sndot/internal/adapters/storage/memory"
	pg "sndot/internal/adapters/storage/postgres"
	"sndot/internal/auth"
	"sndot/internal/domain/admins"
	"sndot/internal/domain/centers"
	"sndot/internal/domain/donors"
	"sndot/internal/domain/organs"
	"sndot/internal/domain/people"
	"sndot/internal/domain/recipients"
	"sndot/internal/importer"
	"sndot/internal/middleware"
	"sndot/internal/platform/config"
	"sndot/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Options struct {
	Config config.Config
	Log    *zap.Logger

	// Opcional: se vier, usa Postgres. Se não, in-memory.
	DB *sql.DB

	// Opcional: store de sessão já montado (testes). Se não vier, decide
	// entre Redis e memória pelo Config.RedisAddr.
	Sessions auth.Store
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	sessions := opts.Sessions
	if sessions == nil {
		if addr := opts.Config.RedisAddr; addr != "" {
			store, err := redsess.Open(addr)
			if err != nil {
				log.Error("redis indisponível, sessões em memória", zap.String("addr", addr), zap.Error(err))
			} else {
				sessions = store
			}
		}
	}
	if sessions == nil {
		sessions = memsess.NewStore()
	}

	r.Use(middleware.AuthContext(sessions))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	registerLandings(r)

	var (
		donorsRepo     donors.Repository
		recipientsRepo recipients.Repository
		adminsRepo     admins.Repository
		organsRepo     organs.Repository
		centersRepo    centers.Repository
		directory      people.Directory
	)

	// Se não passaram DB explícita, tenta pela config (dev/handoff).
	db := opts.DB
	if db == nil {
		if dsn := opts.Config.DBDSN; dsn != "" {
			opened, err := pg.Open(dsn)
			if err != nil {
				log.Error("postgres indisponível, repositórios em memória", zap.Error(err))
			} else {
				db = opened
			}
		}
	}

	if db != nil {
		donorsRepo = pg.NewDonorsRepo(db)
		recipientsRepo = pg.NewRecipientsRepo(db)
		adminsRepo = pg.NewAdminsRepo(db)
		organsRepo = pg.NewOrgansRepo(db)
		centersRepo = pg.NewCentersRepo(db)
		directory = pg.NewDirectory(db)
	} else {
		dRepo := mem.NewDonorsRepo()
		rRepo := mem.NewRecipientsRepo()
		aRepo := mem.NewAdminsRepo()
		donorsRepo = dRepo
		recipientsRepo = rRepo
		adminsRepo = aRepo
		organsRepo = mem.NewOrgansRepo()
		centersRepo = mem.NewCentersRepo()
		directory = mem.NewDirectory(dRepo, rRepo, aRepo)
	}

	// Services por módulo
	donorsSvc := donors.NewService(donorsRepo, directory)
	recipientsSvc := recipients.NewService(recipientsRepo, directory)
	adminsSvc := admins.NewService(adminsRepo, directory)
	organsSvc := organs.NewService(organsRepo)
	centersSvc := centers.NewService(centersRepo)

	sessionTTL := opts.Config.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = config.DefaultSessionTTL
	}

	// Rotas por módulo
	donors.RegisterRoutes(r, donorsSvc)
	recipients.RegisterRoutes(r, recipientsSvc)
	admins.RegisterRoutes(r, adminsSvc, sessions, sessionTTL)
	organs.RegisterRoutes(r, organsSvc)
	centers.RegisterRoutes(r, centersSvc)
	importer.RegisterRoutes(r, donorsSvc, recipientsSvc, log)

	return r
}

// registerLandings expõe as páginas de entrada como payloads JSON com os
// caminhos de cada área; a API não serve templates HTML.
func registerLandings(r chi.Router) {
	landing := func(titulo string, rotas map[string]string) http.HandlerFunc {
		body, _ := json.Marshal(map[string]any{"titulo": titulo, "rotas": rotas})
		return func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write(body)
		}
	}

	r.Get("/", landing("Sistema Nacional de Doação de Órgãos e Tecidos", map[string]string{
		"doador":        "/pagina-do-doador",
		"receptor":      "/pagina-do-receptor",
		"administrador": "/pagina-do-administrador",
	}))
	r.Get("/pagina-do-doador", landing("Área do doador", map[string]string{
		"listar":    "/doadores/listar",
		"cadastrar": "/doadores/cadastrar",
		"importar":  "/doadores/importar",
	}))
	r.Get("/pagina-do-receptor", landing("Área do receptor", map[string]string{
		"listar":    "/receptores/",
		"cadastrar": "/receptores/cadastrar",
		"importar":  "/receptores/importar",
	}))
	r.Get("/pagina-do-administrador", landing("Área do administrador", map[string]string{
		"login":     "/login",
		"cadastrar": "/administradores/cadastrar",
		"painel":    "/painel",
	}))
}
