// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/pulsehub/internal/app/system/auth"
	"github.com/dalemusser/pulsehub/internal/domain/models"
)

// MountRoutes mounts the user-management routes. Every route requires
// the admin role.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(auth.RequireRole(models.RoleAdmin))
	r.Get("/", h.List)
	r.Post("/", h.Create)
}
