// internal/app/features/feedback/handler.go
package feedback

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	employeestore "github.com/dalemusser/pulsehub/internal/app/store/employees"
	feedbackstore "github.com/dalemusser/pulsehub/internal/app/store/feedback"
	"github.com/dalemusser/pulsehub/internal/app/system/auth"
	"github.com/dalemusser/pulsehub/internal/app/system/authz"
	"github.com/dalemusser/pulsehub/internal/app/system/httpjson"
	"github.com/dalemusser/pulsehub/internal/app/system/inputval"
	"github.com/dalemusser/pulsehub/internal/app/system/livequery"
	"github.com/dalemusser/pulsehub/internal/app/system/notify"
	"github.com/dalemusser/pulsehub/internal/app/system/timeouts"
	"github.com/dalemusser/pulsehub/internal/domain/models"
)

// Handler owns all feedback handlers.
type Handler struct {
	DB        *mongo.Database
	Feedback  *feedbackstore.Store
	Employees *employeestore.Store
	Notify    *notify.Service
	Hub       *livequery.Hub
	Log       *zap.Logger
}

// NewHandler constructs a feedback Handler.
func NewHandler(db *mongo.Database, notifier *notify.Service, hub *livequery.Hub, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Feedback:  feedbackstore.New(db),
		Employees: employeestore.New(db),
		Notify:    notifier,
		Hub:       hub,
		Log:       logger,
	}
}

type createRequest struct {
	EmployeeID         string `json:"employee_id" validate:"required"`
	Content            string `json:"content" validate:"max=10000"`
	Rating             int    `json:"rating" validate:"min=0,max=5"`
	Category           string `json:"category" validate:"required,max=100"`
	RequestDescription string `json:"request_description" validate:"max=5000"`
}

// ListByEmployee handles GET /api/feedback?employee_id=…. Employees can
// read their own feedback, admins anyone's.
func (h *Handler) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		httpjson.Error(w, http.StatusBadRequest, "employee_id query parameter is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !h.canView(ctx, r, employeeID) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	list, err := h.Feedback.ListByEmployee(ctx, employeeID)
	if err != nil {
		h.Log.Error("list feedback failed", zap.Error(err), zap.String("employee_id", employeeID))
		httpjson.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	httpjson.Respond(w, http.StatusOK, list)
}

// Create handles POST /api/feedback. Any signed-in user can submit.
// Feedback requests (category "request-*") may only be filed by the
// employee the request is about; regular feedback about yourself is
// rejected. Notifications go out best effort.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	emp, err := h.lookupEmployee(ctx, req.EmployeeID)
	if err != nil {
		h.Log.Error("create feedback: employee lookup failed", zap.Error(err), zap.String("employee_id", req.EmployeeID))
		httpjson.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	if emp == nil {
		httpjson.Error(w, http.StatusNotFound, "employee not found")
		return
	}

	fb := models.Feedback{
		EmployeeID:         req.EmployeeID,
		Content:            req.Content,
		Rating:             req.Rating,
		Category:           req.Category,
		RequestDescription: req.RequestDescription,
	}

	user, ok := auth.CurrentUser(r)
	if ok {
		fb.ReviewerID = user.ID
		fb.ReviewerName = user.Name
	}

	if fb.IsRequest() {
		// Only the employee the record belongs to can ask for feedback.
		if user == nil || emp.UserID == "" || emp.UserID != user.ID {
			httpjson.Error(w, http.StatusForbidden, "only the employee can request feedback")
			return
		}
	} else if user != nil && emp.UserID != "" && emp.UserID == user.ID && !authz.IsAdmin(r) {
		httpjson.Error(w, http.StatusForbidden, "cannot leave feedback on your own record")
		return
	}

	created, err := h.Feedback.Create(ctx, fb)
	if err != nil {
		h.Log.Error("create feedback failed", zap.Error(err), zap.String("employee_id", req.EmployeeID))
		httpjson.Error(w, http.StatusInternalServerError, "failed to create feedback")
		return
	}

	h.Notify.FeedbackCreated(ctx, emp, &created)

	h.Log.Info("feedback created",
		zap.String("feedback_id", created.ID.Hex()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("category", created.Category))
	httpjson.Respond(w, http.StatusCreated, created)
}

// Clear handles DELETE /api/feedback/{id}. The owning employee or an
// admin can remove a single feedback record. Idempotent: deleting a
// record that is already gone succeeds.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	fb, err := h.Feedback.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("clear feedback: lookup failed", zap.Error(err), zap.String("feedback_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	if fb == nil {
		httpjson.Respond(w, http.StatusOK, map[string]string{"id": id.Hex()})
		return
	}

	if !h.canClear(ctx, r, fb.EmployeeID) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	if err := h.Feedback.Delete(ctx, id); err != nil {
		h.Log.Error("clear feedback failed", zap.Error(err), zap.String("feedback_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "failed to clear feedback")
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]string{"id": id.Hex()})
}

// ClearAll handles DELETE /api/feedback?employee_id=…. Removes every
// feedback record for the employee and reports the count.
func (h *Handler) ClearAll(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		httpjson.Error(w, http.StatusBadRequest, "employee_id query parameter is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !h.canClear(ctx, r, employeeID) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	removed, err := h.Feedback.DeleteByEmployee(ctx, employeeID)
	if err != nil {
		h.Log.Error("clear all feedback failed", zap.Error(err), zap.String("employee_id", employeeID))
		httpjson.Error(w, http.StatusInternalServerError, "failed to clear feedback")
		return
	}

	h.Log.Info("feedback cleared",
		zap.String("employee_id", employeeID),
		zap.Int64("removed", removed))
	httpjson.Respond(w, http.StatusOK, map[string]int64{"removed": removed})
}

// canClear reports whether the requester may clear feedback scoped to
// the given employee record.
func (h *Handler) canClear(ctx context.Context, r *http.Request, employeeID string) bool {
	if authz.IsAdmin(r) {
		return true
	}
	emp, err := h.lookupEmployee(ctx, employeeID)
	if err != nil || emp == nil {
		return false
	}
	return authz.CanClearFeedback(r, emp)
}

func (h *Handler) lookupEmployee(ctx context.Context, employeeID string) (*models.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(employeeID)
	if err != nil {
		return nil, nil
	}
	return h.Employees.GetByID(ctx, oid)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid feedback id")
		return primitive.NilObjectID, false
	}
	return id, true
}
