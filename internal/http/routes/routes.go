package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/pokedex/internal/catalog"
	"github.com/briangreenhill/pokedex/internal/config"
	"github.com/briangreenhill/pokedex/internal/favorites"
	appmw "github.com/briangreenhill/pokedex/internal/http/middleware"
)

// Catalog is the read side of the service as seen by the HTTP layer
type Catalog interface {
	GetList(ctx context.Context, offset, limit int) ([]catalog.EntitySummary, error)
	GetDetail(ctx context.Context, id int) (*catalog.EntityDetail, error)
	LookupName(ctx context.Context, id int) (string, error)
	CacheSize() int
	ClearCache()
}

// Jobs hands favorite-name resolution to the background worker
type Jobs interface {
	EnqueueResolveName(ctx context.Context, id int) (string, error)
}

var _ Catalog = (*catalog.Service)(nil)

type Server struct {
	Router    *chi.Mux
	Catalog   Catalog
	Favorites favorites.Store
	Jobs      Jobs // nil resolves names inline
	Log       zerolog.Logger
}

type ServerOptions struct {
	Catalog   Catalog
	Favorites favorites.Store
	Jobs      Jobs
	Cfg       config.Config
	Logger    zerolog.Logger
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(appmw.RequestLogger(opts.Logger))
	r.Use(chimw.Recoverer)

	s := &Server{
		Router:    r,
		Catalog:   opts.Catalog,
		Favorites: opts.Favorites,
		Jobs:      opts.Jobs,
		Log:       opts.Logger,
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			s.Log.Error().Err(err).Msg("write health check response")
		}
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Get("/pokemon", s.listPokemon)
		api.Get("/pokemon/{id}", s.getPokemon)

		api.Route("/favorites", func(fr chi.Router) {
			fr.Get("/", s.listFavorites)
			fr.Post("/", s.addFavorite)
			fr.Delete("/{id}", s.removeFavorite)
		})

		api.Get("/cache", s.cacheStats)
		api.With(appmw.RequireAdminToken(opts.Cfg.AdminToken)).Delete("/cache", s.clearCache)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) cacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]int{"size": s.Catalog.CacheSize()})
}

func (s *Server) clearCache(w http.ResponseWriter, r *http.Request) {
	s.Catalog.ClearCache()
	w.WriteHeader(http.StatusNoContent)
}
