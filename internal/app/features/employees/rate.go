// internal/app/features/employees/rate.go
package employees

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/dalemusser/pulsehub/internal/app/system/auth"
	"github.com/dalemusser/pulsehub/internal/app/system/httpjson"
	"github.com/dalemusser/pulsehub/internal/app/system/inputval"
	"github.com/dalemusser/pulsehub/internal/app/system/scoring"
	"github.com/dalemusser/pulsehub/internal/app/system/timeouts"
	"github.com/dalemusser/pulsehub/internal/domain/models"
)

// Metric names recorded by a rating.
const (
	MetricCommunication   = "communication"
	MetricTeamwork        = "teamwork"
	MetricTechnicalSkills = "technical skills"
)

type rateRequest struct {
	Overall         int    `json:"overall" validate:"min=1,max=5"`
	Communication   int    `json:"communication" validate:"min=1,max=5"`
	Teamwork        int    `json:"teamwork" validate:"min=1,max=5"`
	TechnicalSkills int    `json:"technical_skills" validate:"min=1,max=5"`
	Comment         string `json:"comment" validate:"max=5000"`
}

type rateResponse struct {
	EmployeeID       string                 `json:"employee_id"`
	PerformanceScore int                    `json:"performance_score"`
	Metrics          models.EmployeeMetrics `json:"metrics"`
}

// Rate handles POST /api/employees/{id}/rate. Admin only.
//
// A rating is one write fan-out: the aggregate score and per-category
// percentages land on the employee record, each category is appended to
// the metric history, the comment becomes a "performance review"
// feedback entry, and the employee is notified. Only the employee
// record write can fail the request; the rest is best effort.
func (h *Handler) Rate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req rateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	emp, err := h.Employees.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("rate employee: lookup failed", zap.Error(err), zap.String("employee_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	if emp == nil {
		httpjson.Error(w, http.StatusNotFound, "employee not found")
		return
	}

	ratings := scoring.Ratings{
		Overall:         req.Overall,
		Communication:   req.Communication,
		Teamwork:        req.Teamwork,
		TechnicalSkills: req.TechnicalSkills,
	}
	score := h.Scoring.OverallScore(ratings)
	newMetrics := models.EmployeeMetrics{
		Communication:   h.Scoring.MetricValue(req.Communication),
		Teamwork:        h.Scoring.MetricValue(req.Teamwork),
		TechnicalSkills: h.Scoring.MetricValue(req.TechnicalSkills),
	}

	if err := h.Employees.Update(ctx, id, bson.M{
		"performance_score": score,
		"metrics":           newMetrics,
	}); err != nil {
		h.Log.Error("rate employee: score update failed", zap.Error(err), zap.String("employee_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "failed to record rating")
		return
	}

	now := time.Now().UTC()
	hex := emp.ID.Hex()
	history := []models.PerformanceMetric{
		{EmployeeID: hex, Metric: MetricCommunication, Value: newMetrics.Communication, Date: now},
		{EmployeeID: hex, Metric: MetricTeamwork, Value: newMetrics.Teamwork, Date: now},
		{EmployeeID: hex, Metric: MetricTechnicalSkills, Value: newMetrics.TechnicalSkills, Date: now},
	}
	for _, m := range history {
		if _, err := h.Metrics.Record(ctx, m); err != nil {
			h.Log.Warn("rate employee: metric record failed",
				zap.Error(err),
				zap.String("employee_id", hex),
				zap.String("metric", m.Metric))
			continue
		}
		h.Notify.MetricRecorded(ctx, emp, m.Metric, m.Value)
	}

	reviewer, _ := auth.CurrentUser(r)
	review := models.Feedback{
		EmployeeID: hex,
		Content:    req.Comment,
		Rating:     req.Overall,
		Category:   models.CategoryPerformanceReview,
	}
	if reviewer != nil {
		review.ReviewerID = reviewer.ID
		review.ReviewerName = reviewer.Name
	}
	if fb, err := h.Feedback.Create(ctx, review); err != nil {
		h.Log.Warn("rate employee: review feedback failed", zap.Error(err), zap.String("employee_id", hex))
	} else {
		h.Notify.FeedbackCreated(ctx, emp, &fb)
	}

	h.Log.Info("employee rated",
		zap.String("employee_id", hex),
		zap.Int("performance_score", score))

	httpjson.Respond(w, http.StatusOK, rateResponse{
		EmployeeID:       hex,
		PerformanceScore: score,
		Metrics:          newMetrics,
	})
}
