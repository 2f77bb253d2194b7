// internal/app/features/feedback/routes.go
package feedback

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the feedback routes on the given router. All
// handlers gate per-employee access themselves, so no role middleware
// is applied here.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.ListByEmployee)
	r.Get("/subscribe", h.Subscribe)
	r.Post("/", h.Create)
	r.Delete("/", h.ClearAll)
	r.Delete("/{id}", h.Clear)
}
