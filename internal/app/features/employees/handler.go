// internal/app/features/employees/handler.go
package employees

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	employeestore "github.com/dalemusser/pulsehub/internal/app/store/employees"
	feedbackstore "github.com/dalemusser/pulsehub/internal/app/store/feedback"
	metricstore "github.com/dalemusser/pulsehub/internal/app/store/metrics"
	"github.com/dalemusser/pulsehub/internal/app/system/authz"
	"github.com/dalemusser/pulsehub/internal/app/system/httpjson"
	"github.com/dalemusser/pulsehub/internal/app/system/inputval"
	"github.com/dalemusser/pulsehub/internal/app/system/livequery"
	"github.com/dalemusser/pulsehub/internal/app/system/notify"
	"github.com/dalemusser/pulsehub/internal/app/system/photos"
	"github.com/dalemusser/pulsehub/internal/app/system/scoring"
	"github.com/dalemusser/pulsehub/internal/app/system/timeouts"
	"github.com/dalemusser/pulsehub/internal/domain/models"
)

// Handler owns all employee record handlers.
type Handler struct {
	DB        *mongo.Database
	Employees *employeestore.Store
	Feedback  *feedbackstore.Store
	Metrics   *metricstore.Store
	Notify    *notify.Service
	Photos    *photos.Service
	Hub       *livequery.Hub
	Scoring   scoring.Policy
	Log       *zap.Logger
}

// NewHandler constructs an employees Handler.
func NewHandler(db *mongo.Database, notifier *notify.Service, photoSvc *photos.Service, hub *livequery.Hub, policy scoring.Policy, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Employees: employeestore.New(db),
		Feedback:  feedbackstore.New(db),
		Metrics:   metricstore.New(db),
		Notify:    notifier,
		Photos:    photoSvc,
		Hub:       hub,
		Scoring:   policy,
		Log:       logger,
	}
}

type createRequest struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Position   string `json:"position" validate:"max=200"`
	Department string `json:"department" validate:"max=200"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"max=50"`
}

type updateRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	Position   *string `json:"position" validate:"omitempty,max=200"`
	Department *string `json:"department" validate:"omitempty,max=200"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone" validate:"omitempty,max=50"`
	UserID     *string `json:"user_id"`
}

// List handles GET /api/employees.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	emps, err := h.Employees.ListAll(ctx)
	if err != nil {
		h.Log.Error("list employees failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	httpjson.Respond(w, http.StatusOK, emps)
}

// Create handles POST /api/employees. Admin only.
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

	emp, err := h.Employees.Create(ctx, models.Employee{
		UserID:     req.UserID,
		Name:       req.Name,
		Position:   req.Position,
		Department: req.Department,
		Email:      req.Email,
		Phone:      req.Phone,
	})
	if err != nil {
		h.Log.Error("create employee failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to create employee")
		return
	}

	h.Log.Info("employee created",
		zap.String("employee_id", emp.ID.Hex()),
		zap.String("name", emp.Name))
	httpjson.Respond(w, http.StatusCreated, emp)
}

// Get handles GET /api/employees/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	emp, err := h.Employees.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("get employee failed", zap.Error(err), zap.String("employee_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	if emp == nil {
		httpjson.Error(w, http.StatusNotFound, "employee not found")
		return
	}
	if !authz.CanViewEmployee(r, emp) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}
	httpjson.Respond(w, http.StatusOK, emp)
}

// Update handles PATCH /api/employees/{id}. Admin only. Absent fields
// are left untouched.
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
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Position != nil {
		fields["position"] = *req.Position
	}
	if req.Department != nil {
		fields["department"] = *req.Department
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.UserID != nil {
		fields["user_id"] = *req.UserID
	}
	if len(fields) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "no fields to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Employees.Update(ctx, id, fields); err != nil {
		h.Log.Error("update employee failed", zap.Error(err), zap.String("employee_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update employee")
		return
	}

	emp, err := h.Employees.GetByID(ctx, id)
	if err != nil || emp == nil {
		// The update itself succeeded; return a minimal acknowledgment.
		httpjson.Respond(w, http.StatusOK, map[string]string{"id": id.Hex()})
		return
	}
	httpjson.Respond(w, http.StatusOK, emp)
}

// Delete handles DELETE /api/employees/{id}. Admin only. Removes the
// employee record alone; dependent goals, feedback, and metric history
// are left in place and cleared through their own endpoints. Deleting a
// missing employee succeeds.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Employees.Delete(ctx, id); err != nil {
		h.Log.Error("delete employee failed", zap.Error(err), zap.String("employee_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "failed to delete employee")
		return
	}

	h.Log.Info("employee deleted", zap.String("employee_id", id.Hex()))
	httpjson.Respond(w, http.StatusOK, map[string]string{"id": id.Hex()})
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid employee id")
		return primitive.NilObjectID, false
	}
	return id, true
}
