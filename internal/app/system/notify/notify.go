// internal/app/system/notify/notify.go
package notify

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	notificationstore "github.com/dalemusser/pulsehub/internal/app/store/notifications"
	userstore "github.com/dalemusser/pulsehub/internal/app/store/users"
	"github.com/dalemusser/pulsehub/internal/domain/models"
)

// contentPreviewLimit bounds how much of a feedback body is echoed
// into a notification message.
const contentPreviewLimit = 50

/*
Service creates in-app notifications as a side effect of domain events.
Delivery is best effort: failures are logged and never returned to the
caller, so the triggering operation (goal creation, feedback, rating)
succeeds or fails on its own merits.
*/
type Service struct {
	notes *notificationstore.Store
	users *userstore.Store
	log   *zap.Logger
}

func NewService(notes *notificationstore.Store, userStore *userstore.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{notes: notes, users: userStore, log: log}
}

// GoalAssigned tells an employee a new goal was created for them.
// Employees without a linked account are silently skipped.
func (s *Service) GoalAssigned(ctx context.Context, emp *models.Employee, goal *models.Goal) {
	if emp == nil || goal == nil || emp.UserID == "" {
		return
	}
	s.deliver(ctx, models.Notification{
		UserID:  emp.UserID,
		Type:    models.NotifyGoal,
		Title:   "New Goal Assigned",
		Message: "A new goal has been assigned to you: " + goal.Title,
	})
}

// FeedbackCreated routes a new feedback entry:
//
//   - request-* categories are an employee asking for feedback, so
//     every admin gets notified;
//   - a "performance review" goes to the employee as a review notice;
//   - anything else goes to the employee as plain feedback with a
//     truncated preview of the content.
func (s *Service) FeedbackCreated(ctx context.Context, emp *models.Employee, fb *models.Feedback) {
	if fb == nil {
		return
	}

	if fb.IsRequest() {
		s.fanOutToAdmins(ctx, models.Notification{
			Type:    models.NotifyRequest,
			Title:   "New Feedback Request",
			Message: requesterName(emp) + " has requested feedback: " + Truncate(fb.RequestDescription, contentPreviewLimit),
		})
		return
	}

	if emp == nil || emp.UserID == "" {
		return
	}

	if fb.Category == models.CategoryPerformanceReview {
		s.deliver(ctx, models.Notification{
			UserID:  emp.UserID,
			Type:    models.NotifyReview,
			Title:   "New Performance Review",
			Message: "You have received a new performance review",
		})
		return
	}

	s.deliver(ctx, models.Notification{
		UserID:  emp.UserID,
		Type:    models.NotifyFeedback,
		Title:   "New Feedback",
		Message: "You have received new feedback: " + Truncate(fb.Content, contentPreviewLimit),
	})
}

// MetricRecorded tells an employee one of their performance metrics
// changed.
func (s *Service) MetricRecorded(ctx context.Context, emp *models.Employee, metric string, value int) {
	if emp == nil || emp.UserID == "" {
		return
	}
	s.deliver(ctx, models.Notification{
		UserID:  emp.UserID,
		Type:    models.NotifyReview,
		Title:   "Performance Update",
		Message: "Your " + metric + " performance has been updated to " + strconv.Itoa(value) + "%",
	})
}

// System sends a free-form system notification to one user.
func (s *Service) System(ctx context.Context, userID, title, message string) {
	if userID == "" {
		return
	}
	s.deliver(ctx, models.Notification{
		UserID:  userID,
		Type:    models.NotifySystem,
		Title:   title,
		Message: message,
	})
}

func (s *Service) fanOutToAdmins(ctx context.Context, template models.Notification) {
	admins, err := s.users.ListAdmins(ctx)
	if err != nil {
		s.log.Warn("notification fan-out: listing admins failed",
			zap.String("title", template.Title),
			zap.Error(err))
		return
	}
	for _, admin := range admins {
		n := template
		n.UserID = admin.UID
		s.deliver(ctx, n)
	}
}

func (s *Service) deliver(ctx context.Context, n models.Notification) {
	n.Read = false
	n.CreatedAt = time.Now().UTC()
	if _, err := s.notes.Create(ctx, n); err != nil {
		s.log.Warn("notification delivery failed",
			zap.String("user_id", n.UserID),
			zap.String("type", n.Type),
			zap.String("title", n.Title),
			zap.Error(err))
	}
}

func requesterName(emp *models.Employee) string {
	if emp == nil || emp.Name == "" {
		return "An employee"
	}
	return emp.Name
}

// Truncate cuts s to at most limit runes, appending an ellipsis when
// anything was removed.
func Truncate(s string, limit int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit]) + "..."
}
