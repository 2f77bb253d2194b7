// internal/domain/models/feedback.go
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestCategoryPrefix marks a feedback record as an employee-initiated
// ask ("request-peer", "request-manager", ...) rather than feedback given
// to the employee. Requests fan out notifications to every admin.
const RequestCategoryPrefix = "request-"

// CategoryPerformanceReview is the one category with its own notification
// wording and type.
const CategoryPerformanceReview = "performance review"

// Feedback request statuses.
const (
	FeedbackRequestPending   = "pending"
	FeedbackRequestResponded = "responded"
)

// Feedback is a comment or rating attached to an employee, or an
// employee-initiated feedback request (category "request-*").
//
// Rating is 0-5 where 0 means "not applicable" (requests carry no rating).
type Feedback struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID   string             `bson:"employee_id" json:"employee_id"`
	ReviewerID   string             `bson:"reviewer_id,omitempty" json:"reviewer_id,omitempty"`
	ReviewerName string             `bson:"reviewer_name,omitempty" json:"reviewer_name,omitempty"`
	Content      string             `bson:"content" json:"content"`
	Rating       int                `bson:"rating" json:"rating"`
	Category     string             `bson:"category" json:"category"`

	// Request-only fields.
	RequestDescription string `bson:"request_description,omitempty" json:"request_description,omitempty"`
	RequestStatus      string `bson:"request_status,omitempty" json:"request_status,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Key returns the stable identity used by live projections.
func (f Feedback) Key() string { return f.ID.Hex() }

// IsRequest reports whether this record is an employee-initiated ask.
func (f Feedback) IsRequest() bool {
	return strings.HasPrefix(f.Category, RequestCategoryPrefix)
}
