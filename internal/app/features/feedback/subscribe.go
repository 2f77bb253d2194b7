// internal/app/features/feedback/subscribe.go
package feedback

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	feedbackstore "github.com/dalemusser/pulsehub/internal/app/store/feedback"
	"github.com/dalemusser/pulsehub/internal/app/system/authz"
	"github.com/dalemusser/pulsehub/internal/app/system/httpjson"
	"github.com/dalemusser/pulsehub/internal/app/system/livequery"
	"github.com/dalemusser/pulsehub/internal/app/system/sse"
	"github.com/dalemusser/pulsehub/internal/app/system/timeouts"
	"github.com/dalemusser/pulsehub/internal/app/system/viewstate"
	"github.com/dalemusser/pulsehub/internal/domain/models"
)

// Subscribe handles GET /api/feedback/subscribe?employee_id=…. It
// streams the employee's full feedback set as a server-sent event on
// connect and after every change, until the client disconnects.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		httpjson.Error(w, http.StatusBadRequest, "employee_id query parameter is required")
		return
	}

	authCtx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	allowed := h.canView(authCtx, r, employeeID)
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

	view := viewstate.NewList[models.Feedback]()
	sub, err := livequery.Subscribe(r.Context(), h.Hub, feedbackstore.Collection, "employee_id", employeeID,
		func(recs []models.Feedback) {
			stream.Send(projectFeedback(view, recs))
		})
	if err != nil {
		h.Log.Error("feedback subscription failed", zap.Error(err), zap.String("employee_id", employeeID))
		return
	}
	defer sub.Unsubscribe()

	stream.Serve(r.Context().Done())
}

// canView reports whether the requester may read feedback scoped to
// the given employee record.
func (h *Handler) canView(ctx context.Context, r *http.Request, employeeID string) bool {
	if authz.IsAdmin(r) {
		return true
	}
	emp, err := h.lookupEmployee(ctx, employeeID)
	if err != nil || emp == nil {
		return false
	}
	return authz.CanViewEmployee(r, emp)
}

// projectFeedback reconciles a snapshot into the connection's
// projection, newest first.
func projectFeedback(view *viewstate.List[models.Feedback], recs []models.Feedback) []models.Feedback {
	view.ApplySnapshot(recs)
	view.SortBy(func(a, b models.Feedback) bool { return a.CreatedAt.After(b.CreatedAt) })
	return view.Items()
}
