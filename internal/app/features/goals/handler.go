// internal/app/features/goals/handler.go
package goals

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	employeestore "github.com/dalemusser/pulsehub/internal/app/store/employees"
	goalstore "github.com/dalemusser/pulsehub/internal/app/store/goals"
	"github.com/dalemusser/pulsehub/internal/app/system/authz"
	"github.com/dalemusser/pulsehub/internal/app/system/httpjson"
	"github.com/dalemusser/pulsehub/internal/app/system/inputval"
	"github.com/dalemusser/pulsehub/internal/app/system/livequery"
	"github.com/dalemusser/pulsehub/internal/app/system/notify"
	"github.com/dalemusser/pulsehub/internal/app/system/timeouts"
	"github.com/dalemusser/pulsehub/internal/domain/models"
)

// Handler owns all goal handlers.
type Handler struct {
	DB        *mongo.Database
	Goals     *goalstore.Store
	Employees *employeestore.Store
	Notify    *notify.Service
	Hub       *livequery.Hub
	Log       *zap.Logger
}

// NewHandler constructs a goals Handler.
func NewHandler(db *mongo.Database, notifier *notify.Service, hub *livequery.Hub, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Goals:     goalstore.New(db),
		Employees: employeestore.New(db),
		Notify:    notifier,
		Hub:       hub,
		Log:       logger,
	}
}

type createRequest struct {
	EmployeeID  string     `json:"employee_id" validate:"required"`
	Title       string     `json:"title" validate:"required,min=1,max=500"`
	Description string     `json:"description" validate:"max=5000"`
	TargetDate  *time.Time `json:"target_date"`
	Status      string     `json:"status" validate:"omitempty,oneof=pending in-progress completed overdue"`
}

type updateRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=500"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	TargetDate  *time.Time `json:"target_date"`
	Status      *string    `json:"status" validate:"omitempty,oneof=pending in-progress completed overdue"`
}

// ListByEmployee handles GET /api/goals?employee_id=…. Employees can
// read their own goals, admins anyone's.
func (h *Handler) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		httpjson.Error(w, http.StatusBadRequest, "employee_id query parameter is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !h.canAccessEmployee(ctx, r, employeeID) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	list, err := h.Goals.ListByEmployee(ctx, employeeID)
	if err != nil {
		h.Log.Error("list goals failed", zap.Error(err), zap.String("employee_id", employeeID))
		httpjson.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	httpjson.Respond(w, http.StatusOK, list)
}

// Create handles POST /api/goals. Admin only. The assigned employee is
// notified best effort.
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
		h.Log.Error("create goal: employee lookup failed", zap.Error(err), zap.String("employee_id", req.EmployeeID))
		httpjson.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	if emp == nil {
		httpjson.Error(w, http.StatusNotFound, "employee not found")
		return
	}

	goal, err := h.Goals.Create(ctx, models.Goal{
		EmployeeID:  req.EmployeeID,
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
		Status:      req.Status,
	})
	if err != nil {
		h.Log.Error("create goal failed", zap.Error(err), zap.String("employee_id", req.EmployeeID))
		httpjson.Error(w, http.StatusInternalServerError, "failed to create goal")
		return
	}

	h.Notify.GoalAssigned(ctx, emp, &goal)

	h.Log.Info("goal created",
		zap.String("goal_id", goal.ID.Hex()),
		zap.String("employee_id", req.EmployeeID))
	httpjson.Respond(w, http.StatusCreated, goal)
}

// Update handles PATCH /api/goals/{id}. Admin only. Absent fields are
// left untouched; a missing goal is updated blindly and reported as
// success.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.TargetDate != nil {
		fields["target_date"] = *req.TargetDate
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if len(fields) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "no fields to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Goals.Update(ctx, id, fields); err != nil {
		h.Log.Error("update goal failed", zap.Error(err), zap.String("goal_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update goal")
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]string{"id": id.Hex()})
}

// Complete handles POST /api/goals/{id}/complete. The owning employee
// or an admin can mark a goal completed.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	goal, err := h.Goals.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("complete goal: lookup failed", zap.Error(err), zap.String("goal_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	if goal == nil {
		httpjson.Error(w, http.StatusNotFound, "goal not found")
		return
	}
	if !h.canAccessEmployee(ctx, r, goal.EmployeeID) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	if err := h.Goals.SetStatus(ctx, id, models.GoalCompleted); err != nil {
		h.Log.Error("complete goal failed", zap.Error(err), zap.String("goal_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "failed to complete goal")
		return
	}

	h.Log.Info("goal completed", zap.String("goal_id", id.Hex()))
	httpjson.Respond(w, http.StatusOK, map[string]string{"id": id.Hex(), "status": models.GoalCompleted})
}

// Delete handles DELETE /api/goals/{id}. Admin only. Idempotent.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Goals.Delete(ctx, id); err != nil {
		h.Log.Error("delete goal failed", zap.Error(err), zap.String("goal_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "failed to delete goal")
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]string{"id": id.Hex()})
}

// canAccessEmployee reports whether the requester may read data scoped
// to the given employee record.
func (h *Handler) canAccessEmployee(ctx context.Context, r *http.Request, employeeID string) bool {
	if authz.IsAdmin(r) {
		return true
	}
	emp, err := h.lookupEmployee(ctx, employeeID)
	if err != nil || emp == nil {
		return false
	}
	return authz.CanViewEmployee(r, emp)
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
		httpjson.Error(w, http.StatusBadRequest, "invalid goal id")
		return primitive.NilObjectID, false
	}
	return id, true
}
