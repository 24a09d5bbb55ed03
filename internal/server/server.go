// Package server is the composition root: it builds every dependency from
// the configuration, wires them into routes, and runs the HTTP server.
//
// DEPENDENCY FLOW:
//
//	config.Config
//	  → sqlite.DB          (theme preferences)
//	  → github.Client      (outbound REST calls)
//	  → supersede.Group    (one live search / profile load per visitor)
//	  → services           (search, profile, theme)
//	  → handlers           (pages, JSON API, theme toggle, health)
//	  → chi router
//
// Nothing below this package constructs its own dependencies, so tests can
// build a Server against an in-memory database and a fake GitHub.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/hamzaabialal/github-clone/internal/config"
	"github.com/hamzaabialal/github-clone/internal/github"
	"github.com/hamzaabialal/github-clone/internal/handler"
	"github.com/hamzaabialal/github-clone/internal/metrics"
	"github.com/hamzaabialal/github-clone/internal/middleware"
	sqliteRepo "github.com/hamzaabialal/github-clone/internal/repository/sqlite"
	"github.com/hamzaabialal/github-clone/internal/service"
	"github.com/hamzaabialal/github-clone/internal/supersede"
	"github.com/hamzaabialal/github-clone/internal/visitor"
)

// shutdownTimeout is how long in-flight requests get after SIGINT/SIGTERM.
const shutdownTimeout = 30 * time.Second

// Server owns the router and the resources that must be released on exit.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New builds the full dependency graph from cfg.
//
// An empty visitor secret is replaced by a random one. That is fine for
// development, but every restart then forgets all visitors' themes.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes wires middleware and handlers.
//
// ROUTES:
//
//	GET  /                   landing page, runs ?search=
//	GET  /user/{login}       profile page, ?language= filters repositories
//	POST /theme/toggle       flips the theme, redirects back
//	GET  /api/search         search as JSON
//	GET  /api/users/{login}  profile as JSON
//	GET  /static/*           CSS and JS
//	GET  /healthz            liveness
//	GET  /metrics            Prometheus
//
// Only the page and API routes go through visitor.Identify; probes and
// static files don't need a visitor cookie.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	secret := s.config.Visitor.Secret
	if secret == "" {
		var err error
		if secret, err = visitor.RandomSecret(); err != nil {
			return fmt.Errorf("generating visitor secret: %w", err)
		}
		s.logger.Warn("VISITOR_SECRET not set, using a random secret; theme preferences reset on restart")
	}
	tokens, err := visitor.NewTokenService(secret)
	if err != nil {
		return fmt.Errorf("creating visitor tokens: %w", err)
	}

	client := github.NewClient(github.Options{
		BaseURL: s.config.GitHub.BaseURL,
		Token:   s.config.GitHub.Token,
		Timeout: time.Duration(s.config.GitHub.TimeoutSeconds) * time.Second,
		RPS:     s.config.GitHub.RPS,
		Burst:   s.config.GitHub.Burst,
	}, s.logger)
	tickets := supersede.New()

	searchService := service.NewSearchService(client, tickets, s.logger)
	profileService := service.NewProfileService(client, tickets, s.logger)
	themeService := service.NewThemeService(s.db, s.logger)

	renderer, err := handler.NewRenderer(s.config.Server.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}
	pages := handler.NewPageHandler(renderer, searchService, profileService, themeService, s.logger)
	api := handler.NewAPIHandler(searchService, profileService, s.logger)
	theme := handler.NewThemeHandler(themeService, s.logger)
	health := handler.NewHealthHandler(s.db, s.logger)

	fileServer := http.FileServer(http.Dir(s.config.Server.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	s.router.Get("/healthz", health.HandleHealth)
	s.router.Handle("/metrics", metrics.Handler())

	s.router.Group(func(r chi.Router) {
		r.Use(visitor.Identify(tokens, s.logger))

		r.Get("/", pages.HandleLanding)
		r.Get("/user/{login}", pages.HandleProfile)
		r.Post("/theme/toggle", theme.HandleToggle)

		r.Route("/api", func(r chi.Router) {
			r.Get("/search", api.HandleSearch)
			r.Get("/users/{login}", api.HandleUser)
		})

		r.NotFound(pages.HandleNotFound)
	})

	return nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start serves until SIGINT/SIGTERM, then drains in-flight requests and
// closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second, // above the GitHub client timeout
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Server.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Server.Port)),
			slog.String("database", s.config.Storage.DBPath),
			slog.String("githubAPI", s.config.GitHub.BaseURL),
			slog.Bool("githubToken", s.config.GitHub.Token != ""),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
