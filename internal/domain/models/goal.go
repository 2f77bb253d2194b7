// internal/domain/models/goal.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal statuses. Transitions are caller-driven; the store does not enforce
// a state machine. The overdue sweep is the only server-side transition.
const (
	GoalPending    = "pending"
	GoalInProgress = "in-progress"
	GoalCompleted  = "completed"
	GoalOverdue    = "overdue"
)

// Goal is a target assigned to an employee.
type Goal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID  string             `bson:"employee_id" json:"employee_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	TargetDate  *time.Time         `bson:"target_date,omitempty" json:"target_date,omitempty"`
	Status      string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Key returns the stable identity used by live projections.
func (g Goal) Key() string { return g.ID.Hex() }

// IsOpen reports whether the goal can still be worked on.
func (g Goal) IsOpen() bool {
	return g.Status == GoalPending || g.Status == GoalInProgress
}
