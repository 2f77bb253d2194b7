// internal/app/features/notifications/subscribe.go
package notifications

import (
	"net/http"

	"go.uber.org/zap"

	notificationstore "github.com/dalemusser/pulsehub/internal/app/store/notifications"
	"github.com/dalemusser/pulsehub/internal/app/system/auth"
	"github.com/dalemusser/pulsehub/internal/app/system/httpjson"
	"github.com/dalemusser/pulsehub/internal/app/system/livequery"
	"github.com/dalemusser/pulsehub/internal/app/system/sse"
	"github.com/dalemusser/pulsehub/internal/app/system/viewstate"
	"github.com/dalemusser/pulsehub/internal/domain/models"
)

// Subscribe handles GET /api/notifications/subscribe. It streams the
// signed-in user's full notification set, newest first, on connect and
// after every change, until the client disconnects.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	stream, err := sse.NewStream(w)
	if err != nil {
		httpjson.Error(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	view := viewstate.NewList[models.Notification]()
	sub, err := livequery.Subscribe(r.Context(), h.Hub, notificationstore.Collection, "user_id", user.ID,
		func(recs []models.Notification) {
			stream.Send(projectNotifications(view, recs))
		})
	if err != nil {
		h.Log.Error("notification subscription failed", zap.Error(err), zap.String("user_id", user.ID))
		return
	}
	defer sub.Unsubscribe()

	stream.Serve(r.Context().Done())
}

// projectNotifications reconciles a snapshot into the connection's
// projection, newest first.
func projectNotifications(view *viewstate.List[models.Notification], recs []models.Notification) []models.Notification {
	view.ApplySnapshot(recs)
	view.SortBy(func(a, b models.Notification) bool { return a.CreatedAt.After(b.CreatedAt) })
	return view.Items()
}
