package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/orderscan/internal/config"
	"github.com/dgallion1/orderscan/internal/pipeline"
	"github.com/dgallion1/orderscan/internal/render"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for orderscan.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	proc         *pipeline.Processor
	markdown     *render.MarkdownRenderer
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. Synchronous endpoints use
// the orchestrator's processor.
func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		proc:         orch.Processor(),
		markdown:     render.NewMarkdownRenderer(),
		log:          log,
		cfg:          cfg,
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

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/search", s.handleSearch)
		r.Post("/api/names", s.handleNames)
		r.Post("/api/paragraphs", s.handleParagraphs)
		r.Get("/api/forms", s.handleForms)
		r.Get("/api/ranks", s.handleRanks)

		r.Post("/api/jobs", s.handleSubmitJob)
		r.Get("/api/jobs/{jobID}", s.handleJobStatus)
		r.Get("/api/jobs/{jobID}/result", s.handleJobResult)

		r.Get("/api/stats", s.handleStats)
		r.Get("/api/history", s.handleHistory)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
