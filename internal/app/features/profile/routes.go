// internal/app/features/profile/routes.go
package profile

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the profile routes on the given router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Get)
}
