package router

import (
	"database/sql"
	"net/http"
	"os"

	"kitty-lineage/internal/adapters/birthsource/thegraph"
	mem "kitty-lineage/internal/adapters/storage/memory"
	pg "kitty-lineage/internal/adapters/storage/postgres"
	"kitty-lineage/internal/domain/births"
	"kitty-lineage/internal/domain/watchlist"
	"kitty-lineage/internal/middleware"
	"kitty-lineage/internal/platform/logger"
	"kitty-lineage/internal/ports/birthsource"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Source puede venir nil; en ese caso se arma desde env (BIRTH_GRAPH_URL).
	Source birthsource.Source

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Log logger.Logger
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

	r.Use(middleware.ViewerContext)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Upstream GraphQL: inyectado en tests, desde env en dev/prod.
	source := opts.Source
	if source == nil {
		client := thegraph.NewClient(thegraph.Config{
			URL:    os.Getenv("BIRTH_GRAPH_URL"),
			APIKey: os.Getenv("BIRTH_GRAPH_API_KEY"),
		})
		if !client.IsConfigured() {
			log.Warn("BIRTH_GRAPH_URL not set, birth endpoints will fail upstream", nil)
		}
		source = thegraph.NewSource(client)
	}

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, using in-memory cache", logger.Err(err))
			}
		}
	}

	var (
		birthsRepo births.Repository
		wlRepo     watchlist.Repository
	)

	if db != nil {
		birthsRepo = pg.NewBirthsRepo(db)
		wlRepo = pg.NewWatchlistRepo(db)
	} else {
		birthsRepo = mem.NewBirthsRepo()
		wlRepo = mem.NewWatchlistRepo()
	}

	// Services por módulo
	birthsSvc := births.NewService(birthsRepo, source, births.Options{
		ImageBaseURL: os.Getenv("IMG_BASE_URL"),
		Log:          log,
	})
	wlSvc := watchlist.NewService(wlRepo)

	// Rutas por módulo
	births.RegisterRoutes(r, birthsSvc)
	watchlist.RegisterRoutes(r, wlSvc)

	return r
}
