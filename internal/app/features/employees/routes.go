// internal/app/features/employees/routes.go
package employees

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/pulsehub/internal/app/system/auth"
	"github.com/dalemusser/pulsehub/internal/domain/models"
)

// MountRoutes mounts the employee routes on the given router. Reads are
// open to any signed-in user; writes require the admin role.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/directory", h.Directory)
	r.Get("/subscribe", h.Subscribe)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(models.RoleAdmin))
		r.Post("/", h.Create)
		r.Post("/import", h.ImportCSV)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Post("/{id}/rate", h.Rate)
		r.Post("/{id}/photo", h.UploadPhoto)
	})
}
