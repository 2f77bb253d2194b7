// internal/app/features/goals/routes.go
package goals

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/pulsehub/internal/app/system/auth"
	"github.com/dalemusser/pulsehub/internal/domain/models"
)

// MountRoutes mounts the goal routes on the given router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.ListByEmployee)
	r.Get("/subscribe", h.Subscribe)
	r.Post("/{id}/complete", h.Complete)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(models.RoleAdmin))
		r.Post("/", h.Create)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}
