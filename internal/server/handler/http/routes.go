package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/avolkov/skycast/internal/apperr"
	"github.com/avolkov/skycast/internal/middleware"
)

// authRatePerSecond limits how many auth requests one client IP may make.
const authRatePerSecond = 5

// NewRouter constructs the HTTP handler serving the weather service API.
//
// Routes:
//
//	POST /auth/register       → authHandler.Register
//	POST /auth/login          → authHandler.Login
//	POST /auth/request-reset  → authHandler.RequestReset
//	POST /auth/reset          → authHandler.Reset
//	POST /auth/logout         → authHandler.Logout       (bearer)
//	GET  /me                  → profileHandler.Me        (bearer)
//	PUT  /me/theme            → profileHandler.UpdateTheme (bearer)
//	GET  /history             → historyHandler.List      (bearer)
//	POST /history             → historyHandler.Record    (bearer)
//	GET  /api/weather         → weatherHandler.Current
//	GET  /api/forecast        → weatherHandler.Forecast
//
// Request logging and panic recovery wrap every route. Auth routes are
// additionally rate limited and restricted to JSON bodies. The /api group
// identifies authenticated callers when a token is presented but stays
// public.
func NewRouter(
	authHandler *AuthHandler,
	profileHandler *ProfileHandler,
	historyHandler *HistoryHandler,
	weatherHandler *WeatherHandler,
	sessions middleware.SessionResolver,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.Recover(logger))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, logger, apperr.New(apperr.NotFound, "route not found"))
	})

	r.Route("/auth", func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentType("application/json"))
		r.Use(middleware.RateLimit(authRatePerSecond))

		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/request-reset", authHandler.RequestReset)
		r.Post("/reset", authHandler.Reset)

		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(sessions))
			r.Post("/logout", authHandler.Logout)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(sessions))
		r.Get("/me", profileHandler.Me)
		r.Put("/me/theme", profileHandler.UpdateTheme)
		r.Get("/history", historyHandler.List)
		r.Post("/history", historyHandler.Record)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Identify(sessions))
		r.Get("/weather", weatherHandler.Current)
		r.Get("/forecast", weatherHandler.Forecast)
	})

	return r
}
