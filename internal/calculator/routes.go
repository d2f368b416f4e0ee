package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func RegisterRoutes(r chi.Router, api *API) {
	r.Route("/calculator", func(r chi.Router) {
		r.Post("/evaluate", api.Evaluate)
		r.Post("/batch", api.Batch)
		r.Post("/chain", api.Chain)
		r.Post("/{operation}", api.Binary)
	})
}
