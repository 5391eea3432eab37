package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/leadcanvas/leadcanvas/internal/auth"
	"github.com/leadcanvas/leadcanvas/internal/hypothesis"
	"github.com/leadcanvas/leadcanvas/internal/middlewares"
	"github.com/leadcanvas/leadcanvas/internal/nudge"
	"github.com/leadcanvas/leadcanvas/internal/progress"
	"github.com/leadcanvas/leadcanvas/internal/settings"
	"github.com/leadcanvas/leadcanvas/internal/summary"
	"github.com/leadcanvas/leadcanvas/internal/theme"
	"github.com/leadcanvas/leadcanvas/internal/user"
)

type RouterConfig struct {
	UserHandler           *user.Handler
	ThemeHandler          *theme.Handler
	HypothesisHandler     *hypothesis.Handler
	ProgressHandler       *progress.Handler
	SettingsHandler       *settings.Handler
	NudgeHandler          *nudge.Handler
	NudgeScheduledHandler *nudge.ScheduledHandler
	SummaryHandler        *summary.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", cfg.UserHandler.GoogleLogin)
		r.Post("/refresh", cfg.UserHandler.RefreshToken)
		r.Post("/logout", auth.NewHandler().Logout)
	})

	// Scheduler endpoints live outside the session group; they carry their
	// own bearer-secret check.
	r.Mount("/api/weekly-nudges", nudge.ScheduledRoutes(cfg.NudgeScheduledHandler))

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/themes", theme.Routes(cfg.ThemeHandler))
		r.Mount("/hypotheses", hypothesis.Routes(cfg.HypothesisHandler))
		r.Mount("/progress", progress.Routes(cfg.ProgressHandler))
		r.Mount("/settings", settings.Routes(cfg.SettingsHandler))

		r.Post("/themes/{themeId}/hypotheses", cfg.HypothesisHandler.AddToTheme)

		r.Route("/client", func(r chi.Router) {
			r.Get("/home", cfg.SummaryHandler.Home)
			r.Get("/canvas", cfg.SummaryHandler.Canvas)
		})

		// Coach role is enforced per-operation in the services, against the
		// stored role rather than token claims.
		r.Route("/coach", func(r chi.Router) {
			r.Get("/dashboard", cfg.SummaryHandler.Dashboard)
			r.Get("/clients", cfg.SummaryHandler.Clients)
			r.Get("/clients/{clientId}", cfg.SummaryHandler.ClientDetail)
			r.Put("/clients/{clientId}/padlet-url", cfg.UserHandler.UpdateClientPadletURL)
			r.Mount("/nudges", nudge.Routes(cfg.NudgeHandler))
		})
	})
	return r
}
