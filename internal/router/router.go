package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bookshelf/internal/config"
	"bookshelf/internal/handler"
	"bookshelf/internal/middleware"
	"bookshelf/internal/model"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	Review *handler.ReviewHandler
	// Health reports whether backing stores are reachable. Nil means always healthy.
	Health func(ctx context.Context) error
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteJSON(w, http.StatusMethodNotAllowed, model.ErrorResponse{Error: "Method not allowed"})
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "Not found"})
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if h.Health != nil {
			if err := h.Health(req.Context()); err != nil {
				slog.ErrorContext(req.Context(), "health check failed", "error", err)
				middleware.WriteJSON(w, http.StatusServiceUnavailable, model.ErrorResponse{Error: "Service unavailable"})
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Post("/signup", h.Auth.Signup)
		api.Post("/login", h.Auth.Login)
		api.Post("/logout", h.Auth.Logout)

		api.Group(func(protected chi.Router) {
			protected.Use(authMiddleware.RequireAuth)

			protected.Get("/me", h.Auth.Me)
			protected.Get("/reviews", h.Review.List)
			protected.Post("/reviews", h.Review.Create)
			protected.Delete("/reviews/{id}", h.Review.Delete)
		})
	})

	return r
}
