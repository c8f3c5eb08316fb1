package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/doculaw-ai/doculaw/internal/api/handlers"
	"github.com/doculaw-ai/doculaw/internal/api/middlewares"
	"github.com/doculaw-ai/doculaw/internal/chat"
	"github.com/doculaw-ai/doculaw/internal/config"
	"github.com/doculaw-ai/doculaw/internal/documents"
	"github.com/doculaw-ai/doculaw/internal/logger"
	"github.com/doculaw-ai/doculaw/internal/onboarding"
	"github.com/doculaw-ai/doculaw/internal/store"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
	log        *logger.Logger
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, st store.Store, docs *documents.Service, chatSvc *chat.Service, log *logger.Logger) *Server {
	authHandler := handlers.NewAuthHandler(st, cfg.JWTSecret, log)
	profileHandler := handlers.NewProfileHandler(st,
		onboarding.NewFileProfileStore(cfg.ProfilePath), log)
	docHandler := handlers.NewDocumentHandler(st, docs, log)
	chatHandler := handlers.NewChatHandler(st, chatSvc)
	searchHandler := handlers.NewSearchHandler(st)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(api chi.Router) {
		// public endpoints
		api.Get("/health", healthHandler)
		api.Post("/signup", authHandler.Signup)
		api.Post("/login", authHandler.Login)

		// protected endpoints
		api.Group(func(protected chi.Router) {
			protected.Use(middlewares.JWT(cfg.JWTSecret))

			protected.Post("/logout", authHandler.Logout)
			protected.Get("/me", authHandler.Me)

			protected.Get("/profile", profileHandler.Get)
			protected.Put("/profile", profileHandler.Put)

			protected.Post("/documents/upload", docHandler.Upload)
			protected.Get("/documents", docHandler.List)
			protected.Get("/documents/{id}", docHandler.Get)
			protected.Delete("/documents/{id}", docHandler.Delete)
			protected.Post("/documents/{id}/simplify", docHandler.Simplify)

			protected.Post("/chat/sessions", chatHandler.CreateSession)
			protected.Get("/chat/sessions", chatHandler.ListSessions)
			protected.Get("/chat/sessions/{id}", chatHandler.GetSession)
			protected.Delete("/chat/sessions/{id}", chatHandler.DeleteSession)
			protected.Post("/chat/sessions/{id}/messages", chatHandler.SendMessage)

			protected.Post("/search/documents", searchHandler.Documents)
		})
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv, log: log}
}

// Handler exposes the router. Tests drive it through httptest.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the HTTP server until Shutdown.
func (s *Server) Start() error {
	s.log.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"success":true,"data":{"ok":true}}`))
}

func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
