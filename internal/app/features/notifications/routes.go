// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the notification routes on the given router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/subscribe", h.Subscribe)
	r.Post("/read-all", h.MarkAllRead)
	r.Post("/{id}/read", h.MarkRead)
}
