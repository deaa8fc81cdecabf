package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/http/handlers"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/middleware"
)

// Options configures the middleware stack around the handlers.
type Options struct {
	Logger          zerolog.Logger
	CORSOrigins     []string
	RateLimitPerMin int
	JWTSecret       string
	AdminToken      string
	DefaultLocale   string
	CountryLookup   middleware.CountryLookup
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.CORSOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)

	r.Method(http.MethodGet, "/metrics", handlers.Metrics())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Identity(opts.JWTSecret))

			r.With(middleware.RateLimit(opts.RateLimitPerMin, time.Minute)).Post("/auth/google", app.AuthGoogle)
			r.Get("/quota", app.Quota)
			r.Get("/presets/clothing", app.ClothingPresets)
			r.With(middleware.RateLimit(opts.RateLimitPerMin, time.Minute)).Post("/edits", app.Edit)
		})

		if opts.AdminToken != "" {
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminToken(opts.AdminToken))
				r.Post("/quota/reset", app.ResetQuota)
				r.Put("/gemini-key", app.SetGeminiKey)
			})
		}
	})

	return r
}
