package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dgallion1/roster/internal/catalog"
	"github.com/dgallion1/roster/internal/config"
	"github.com/dgallion1/roster/internal/content"
	"github.com/dgallion1/roster/internal/media"
	"github.com/dgallion1/roster/internal/store"
	"github.com/dgallion1/roster/internal/textextract"
)

// Server is the HTTP API server for roster.
type Server struct {
	router    chi.Router
	catalog   *catalog.Reader
	content   *content.Assembler
	store     *store.Store
	classify  *media.Classifier
	extractor *textextract.Extractor
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(
	cat *catalog.Reader,
	asm *content.Assembler,
	st *store.Store,
	cls *media.Classifier,
	ex *textextract.Extractor,
	log *slog.Logger,
	cfg config.Config,
) *Server {
	s := &Server{
		catalog:   cat,
		content:   asm,
		store:     st,
		classify:  cls,
		extractor: ex,
		log:       log,
		cfg:       cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(Metrics)
	r.Use(CORS(s.cfg.AllowedOrigins))
	r.Use(middleware.GetHead)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	// Operational endpoints.
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(RateLimit(s.cfg.RateLimitRequests, s.cfg.RateLimitWindow))

		r.Get("/", s.handleIndex)

		r.Get("/api/locations", s.handleLocations)
		r.Get("/api/people/{location}", s.handlePeople)
		r.Get("/api/content/{location}/{person}", s.handleContent)
		r.Get("/api/contact/{location}/{person}", s.handleContact)
		r.Get("/api/stats/extract", s.handleExtractStats)

		r.Get("/files/{location}/{person}/{filename}", s.handleFile)
		r.Get("/files/{location}/{person}/"+s.cfg.ContactDir+"/{filename}", s.handleContactFile)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
