// internal/app/features/leaderboard/routes.go
package leaderboard

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the leaderboard routes on the given router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
}
