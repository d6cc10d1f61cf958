package listings

import "github.com/go-chi/chi/v5"

// MountRoutes registers the directory routes on r.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Index)
	r.Get("/form.html", h.Form)
	r.Get("/data/listings.json", h.Data)
	r.Route("/api", func(r chi.Router) {
		r.Get("/listings", h.APIList)
		r.Get("/facets", h.APIFacets)
	})
}
