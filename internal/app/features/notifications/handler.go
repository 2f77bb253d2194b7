// internal/app/features/notifications/handler.go
package notifications

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	notificationstore "github.com/dalemusser/pulsehub/internal/app/store/notifications"
	"github.com/dalemusser/pulsehub/internal/app/system/auth"
	"github.com/dalemusser/pulsehub/internal/app/system/httpjson"
	"github.com/dalemusser/pulsehub/internal/app/system/livequery"
	"github.com/dalemusser/pulsehub/internal/app/system/timeouts"
)

// Handler owns the notification handlers. Everything is scoped to the
// signed-in user; there is no way to read or mark another user's
// notifications.
type Handler struct {
	DB            *mongo.Database
	Notifications *notificationstore.Store
	Hub           *livequery.Hub
	Log           *zap.Logger
}

// NewHandler constructs a notifications Handler.
func NewHandler(db *mongo.Database, hub *livequery.Hub, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Notifications: notificationstore.New(db),
		Hub:           hub,
		Log:           logger,
	}
}

// List handles GET /api/notifications. Returns the signed-in user's
// notifications newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Notifications.ListByUser(ctx, user.ID)
	if err != nil {
		h.Log.Error("list notifications failed", zap.Error(err), zap.String("user_id", user.ID))
		httpjson.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	httpjson.Respond(w, http.StatusOK, list)
}

// MarkRead handles POST /api/notifications/{id}/read. Marking an id
// that is missing or belongs to someone else matches nothing and still
// reports success.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Notifications.MarkRead(ctx, id, user.ID); err != nil {
		h.Log.Error("mark notification read failed", zap.Error(err), zap.String("notification_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "failed to mark notification read")
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]string{"id": id.Hex()})
}

// MarkAllRead handles POST /api/notifications/read-all and reports how
// many notifications were flipped.
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	changed, err := h.Notifications.MarkAllRead(ctx, user.ID)
	if err != nil {
		h.Log.Error("mark all notifications read failed", zap.Error(err), zap.String("user_id", user.ID))
		httpjson.Error(w, http.StatusInternalServerError, "failed to mark notifications read")
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]int64{"marked": changed})
}
