package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"scenestudio/internal/http/handlers"
	"scenestudio/internal/infra"
	"scenestudio/internal/middleware"
)

// NewRouter wires the REST surface over the handler container.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger, country middleware.CountryLookup) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimiddleware.RealIP, chimiddleware.Recoverer)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Locale("en", country))
	r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))

	r.Get("/v1/healthz", app.Health)

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", app.ProjectsList)
		r.Post("/", app.ProjectsCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", app.ProjectsGet)
			r.Put("/", app.ProjectsUpdate)
			r.Delete("/", app.ProjectsDelete)
			r.Post("/generate", app.Generate)
			r.Get("/generate/stream", app.GenerateStream)
			r.Post("/instruct", app.Instruct)
			r.Post("/history/undo", app.HistoryUndo)
			r.Post("/history/redo", app.HistoryRedo)
		})
	})

	return r
}
