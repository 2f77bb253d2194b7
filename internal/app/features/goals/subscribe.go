// internal/app/features/goals/subscribe.go
package goals

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	goalstore "github.com/dalemusser/pulsehub/internal/app/store/goals"
	"github.com/dalemusser/pulsehub/internal/app/system/httpjson"
	"github.com/dalemusser/pulsehub/internal/app/system/livequery"
	"github.com/dalemusser/pulsehub/internal/app/system/sse"
	"github.com/dalemusser/pulsehub/internal/app/system/timeouts"
	"github.com/dalemusser/pulsehub/internal/app/system/viewstate"
	"github.com/dalemusser/pulsehub/internal/domain/models"
)

// Subscribe handles GET /api/goals/subscribe?employee_id=…. It streams
// the employee's full goal set as a server-sent event on connect and
// after every change, until the client disconnects.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		httpjson.Error(w, http.StatusBadRequest, "employee_id query parameter is required")
		return
	}

	authCtx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	allowed := h.canAccessEmployee(authCtx, r, employeeID)
	cancel()
	if !allowed {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	stream, err := sse.NewStream(w)
	if err != nil {
		httpjson.Error(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	view := viewstate.NewList[models.Goal]()
	sub, err := livequery.Subscribe(r.Context(), h.Hub, goalstore.Collection, "employee_id", employeeID,
		func(recs []models.Goal) {
			stream.Send(projectGoals(view, recs))
		})
	if err != nil {
		h.Log.Error("goal subscription failed", zap.Error(err), zap.String("employee_id", employeeID))
		return
	}
	defer sub.Unsubscribe()

	stream.Serve(r.Context().Done())
}

// projectGoals reconciles a snapshot into the connection's projection
// and returns it oldest first, so a goal keeps its position across
// refreshes.
func projectGoals(view *viewstate.List[models.Goal], recs []models.Goal) []models.Goal {
	view.ApplySnapshot(recs)
	view.SortBy(func(a, b models.Goal) bool { return a.CreatedAt.Before(b.CreatedAt) })
	return view.Items()
}
