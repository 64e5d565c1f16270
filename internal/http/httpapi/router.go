package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"comfygen/internal/http/handlers"
	"comfygen/internal/middleware"
)

func NewRouter(app *handlers.App) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/videos", func(r chi.Router) {
		r.Post("/generate", app.VideosGenerate)
		r.Get("/aspect-ratios", app.AspectRatios)
	})
	r.Get("/v1/generations/{id}", app.GenerationStatus)

	return r
}
