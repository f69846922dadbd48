package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"foodlink/internal/auth"
	"foodlink/internal/http/handlers"
	"foodlink/internal/infra"
	"foodlink/internal/middleware"
)

// NewRouter wires every route and middleware of the API.
func NewRouter(app *handlers.App, tokens *auth.TokenManager, cfg *infra.Config, logger zerolog.Logger, lookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
		middleware.CORS([]string{cfg.FrontendURL}),
		middleware.I18N("en", lookup),
	)

	r.Get("/", app.Root)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", app.Health)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)

		// Credential endpoints get a per-IP rate limit.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))
			r.Post("/signup", app.Signup)
			r.Post("/login", app.Login)
		})

		r.Get("/donations", app.DonationsList)
		r.Get("/donations/filter", app.DonationsFilter)
		r.Get("/donations/by-donor/{donorName}", app.DonationsByDonor)
		r.Put("/donations/{donationId}", app.DonationsUpdate)
		r.Delete("/donations/{donationId}", app.DonationsDelete)
		r.Get("/matching-donations", app.MatchingDonations)
		r.Get("/stats", app.StatsSummary)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthJWT(tokens))
			r.Post("/donate", app.DonationsCreate)
			r.Post("/claim", app.DonationsClaim)
			r.Get("/user/info", app.UserInfo)
		})
	})

	return r
}
