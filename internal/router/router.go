package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/jwehrle/salescockpit/internal/auth"
	"github.com/jwehrle/salescockpit/internal/dashboard"
	"github.com/jwehrle/salescockpit/internal/entry"
	"github.com/jwehrle/salescockpit/internal/middlewares"
	"github.com/jwehrle/salescockpit/internal/user"
)

type RouterConfig struct {
	UserHandler      *user.Handler
	EntryHandler     *entry.Handler
	DashboardHandler *dashboard.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", cfg.UserHandler.GoogleLogin)
		r.Post("/refresh", cfg.UserHandler.RefreshToken)
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/entries", entry.Routes(cfg.EntryHandler))
		r.Mount("/dashboard", dashboard.Routes(cfg.DashboardHandler))
	})
	return r
}
